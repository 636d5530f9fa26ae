package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/cart"
	"github.com/lasantapapa/pos-app/controllers"
	"github.com/lasantapapa/pos-app/middlewares"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/services"
)

func SetupRouter(db *gorm.DB, catalog *services.CatalogCache, carts *cart.Store) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	productCtrl := controllers.NewProductController(db, catalog)
	cartCtrl := controllers.NewCartController(db, carts, catalog)
	orderCtrl := controllers.NewOrderController(db)
	kitchenCtrl := controllers.NewKitchenController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog reads are public; every screen starts from the product list.
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)

	// WebSocket endpoint for the cocina display
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.KDSHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// PRODUCTS (admin screen); catalog writes are admin-only
	admin := auth.Group("/")
	admin.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:product_id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)
	}

	// CARTS (caja screen; one cart per session)
	auth.GET("/carts/:session_id", cartCtrl.GetCart)
	auth.DELETE("/carts/:session_id", cartCtrl.ClearCart)
	auth.POST("/carts/:session_id/items", cartCtrl.AddItem)
	auth.PATCH("/carts/:session_id/items/:line_id", cartCtrl.UpdateItem)
	auth.POST("/carts/:session_id/items/:line_id/condiments", cartCtrl.ToggleCondiment)
	auth.DELETE("/carts/:session_id/items/:line_id", cartCtrl.RemoveItem)
	auth.POST("/carts/:session_id/checkout", cartCtrl.Checkout)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// KITCHEN (cocina screen)
	auth.GET("/kitchen/display", kitchenCtrl.GetKitchenDisplay)
	auth.POST("/orders/:order_id/complete", kitchenCtrl.CompleteOrder)
	auth.POST("/orders/:order_id/delete", kitchenCtrl.DeleteOrder)
	auth.POST("/orders/:order_id/restore", kitchenCtrl.RestoreOrder)

	return r
}
