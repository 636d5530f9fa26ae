package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/kds"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/utils"
)

type KitchenController struct {
	DB *gorm.DB
}

func NewKitchenController(db *gorm.DB) *KitchenController {
	return &KitchenController{DB: db}
}

type kitchenOrder struct {
	models.Order
	ElapsedMinutes int  `json:"elapsed_minutes"`
	AtRisk         bool `json:"at_risk"`
}

// GetKitchenDisplay -> the three cocina tabs in one payload. Pending is
// sorted oldest first so the longest-waiting order surfaces on top; the
// other tabs keep fetch order (newest first).
func (kc *KitchenController) GetKitchenDisplay(c *gin.Context) {
	var orders []models.Order
	if err := kc.DB.Preload("Items").
		Preload("Items.Product").
		Order("created_at desc").
		Limit(recentOrdersLimit).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	pending := make([]kitchenOrder, 0)
	completed := make([]kitchenOrder, 0)
	deleted := make([]kitchenOrder, 0)

	for _, order := range orders {
		ko := kitchenOrder{
			Order:          order,
			ElapsedMinutes: order.ElapsedMinutes(now),
			AtRisk:         order.AtRisk(now),
		}
		switch order.Status {
		case models.OrderStatusPending:
			pending = append(pending, ko)
		case models.OrderStatusCompleted:
			completed = append(completed, ko)
		case models.OrderStatusDeleted:
			deleted = append(deleted, ko)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", gin.H{
		"pending":   pending,
		"completed": completed,
		"deleted":   deleted,
	})
}

// CompleteOrder -> cocina marks a pending order served.
func (kc *KitchenController) CompleteOrder(c *gin.Context) {
	kc.transition(c, func(order *models.Order, now time.Time) error {
		return order.Complete(now)
	}, "Order completed")
}

// DeleteOrder -> soft delete; the row stays and remains restorable.
func (kc *KitchenController) DeleteOrder(c *gin.Context) {
	kc.transition(c, func(order *models.Order, now time.Time) error {
		return order.SoftDelete(now)
	}, "Order deleted")
}

// RestoreOrder -> bring a completed or deleted order back to pending.
func (kc *KitchenController) RestoreOrder(c *gin.Context) {
	kc.transition(c, func(order *models.Order, now time.Time) error {
		return order.Restore()
	}, "Order restored")
}

func (kc *KitchenController) transition(c *gin.Context, apply func(*models.Order, time.Time) error, message string) {
	id := c.Param("order_id")

	var order models.Order
	if err := kc.DB.First(&order, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := apply(&order, time.Now()); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := kc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastOrderUpdate(order)
	kds.BroadcastKitchenNotification(fmt.Sprintf("Pedido de %s: %s", order.CustomerName, order.Status))

	utils.RespondJSON(c, http.StatusOK, message, order)
}
