package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/controllers"
	"github.com/lasantapapa/pos-app/middlewares"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/services"
	"github.com/lasantapapa/pos-app/utils"
)

func setupProductRouter(db *gorm.DB) (*gin.Engine, *services.CatalogCache) {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	catalog := services.NewCatalogCache(db)
	productCtrl := controllers.NewProductController(db, catalog)
	router.GET("/products", productCtrl.GetAllProducts)
	router.POST("/products", productCtrl.CreateProduct)
	router.GET("/products/:product_id", productCtrl.GetProductByID)
	router.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	router.DELETE("/products/:product_id", productCtrl.DeleteProduct)
	return router, catalog
}

func decodeList(t *testing.T, body []byte) []interface{} {
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &resp))
	list, _ := resp["data"].([]interface{})
	return list
}

func TestProductCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router, _ := setupProductRouter(db)

	w := doJSON(router, "POST", "/products", gin.H{
		"name":     "Salchipapa Picante Grande",
		"price":    15.00,
		"category": "salchipapas",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w)
	id := created["id"].(string)
	assert.NotEmpty(t, id)

	w = doJSON(router, "GET", "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w.Body.Bytes()), 1)

	w = doJSON(router, "PATCH", "/products/"+id, gin.H{"price": 16.50})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 16.50, decodeData(t, w)["price"])

	// The cache was invalidated, the list shows the new price.
	w = doJSON(router, "GET", "/products", nil)
	list := decodeList(t, w.Body.Bytes())
	assert.Equal(t, 16.50, list[0].(map[string]interface{})["price"])

	w = doJSON(router, "DELETE", "/products/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/products", nil)
	assert.Empty(t, decodeList(t, w.Body.Bytes()))
}

func TestProductMutationRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) { c.Set("role", models.RoleCaja) })

	catalog := services.NewCatalogCache(db)
	productCtrl := controllers.NewProductController(db, catalog)
	admin := router.Group("/", middlewares.RequireRoles(models.RoleAdmin))
	admin.POST("/products", productCtrl.CreateProduct)

	w := doJSON(router, "POST", "/products", gin.H{
		"name":     "Gaseosa",
		"price":    1.00,
		"category": "bebidas",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateProductValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router, _ := setupProductRouter(db)

	w := doJSON(router, "POST", "/products", gin.H{
		"name":     "Gaseosa",
		"price":    -1.00,
		"category": "bebidas",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/products", gin.H{
		"name":     "Gaseosa",
		"price":    1.00,
		"category": "postres",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductsByCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	seedProducts(db)
	router, _ := setupProductRouter(db)

	w := doJSON(router, "GET", "/products?category=bebidas", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w.Body.Bytes())
	assert.Len(t, list, 1)
	assert.Equal(t, "Gaseosa", list[0].(map[string]interface{})["name"])

	w = doJSON(router, "GET", "/products?category=postres", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReferencedProductBlocked(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	grande, _ := seedProducts(db)
	router, _ := setupProductRouter(db)

	order := createPendingOrder(db, "Ana", time.Now())
	item := models.OrderItem{
		OrderID:     order.ID,
		ProductID:   grande.ID,
		Quantity:    1,
		PriceAtTime: grande.Price,
		CreatedAt:   order.CreatedAt,
	}
	assert.NoError(t, db.Create(&item).Error)

	w := doJSON(router, "DELETE", "/products/"+grande.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
