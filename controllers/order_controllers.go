package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/utils"
)

// recentOrdersLimit bounds every order listing; the kitchen never needs
// more history than this on screen.
const recentOrdersLimit = 100

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> the most recent orders, newest first, lines and product
// metadata embedded.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Preload("Items.Product").
		Order("created_at desc").
		Limit(recentOrdersLimit).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
