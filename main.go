package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/cart"
	"github.com/lasantapapa/pos-app/config"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/router"
	"github.com/lasantapapa/pos-app/services"
	"github.com/lasantapapa/pos-app/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	catalog := services.NewCatalogCache(db)
	if err := catalog.Refresh(); err != nil {
		// Not fatal; the cache retries on first read.
		utils.ErrorLogger.Printf("Initial catalog load failed: %v", err)
	}

	carts := cart.NewStore()

	monitor := services.NewChangeMonitor(db, catalog)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, catalog, carts)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
