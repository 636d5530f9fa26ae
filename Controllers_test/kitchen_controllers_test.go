package Controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/controllers"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/utils"
)

func setupKitchenRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	kitchenCtrl := controllers.NewKitchenController(db)
	router.GET("/kitchen/display", kitchenCtrl.GetKitchenDisplay)
	router.POST("/orders/:order_id/complete", kitchenCtrl.CompleteOrder)
	router.POST("/orders/:order_id/delete", kitchenCtrl.DeleteOrder)
	router.POST("/orders/:order_id/restore", kitchenCtrl.RestoreOrder)
	return router
}

func createPendingOrder(db *gorm.DB, name string, createdAt time.Time) models.Order {
	order := models.Order{
		CustomerName:  name,
		Status:        models.OrderStatusPending,
		Type:          models.OrderTypeLocal,
		TotalAmount:   13.00,
		PaymentMethod: models.PaymentYape,
		CreatedAt:     createdAt,
	}
	db.Create(&order)
	return order
}

func TestOrderStatusTransitions(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupKitchenRouter(db)

	order := createPendingOrder(db, "Ana", time.Now())

	// pending -> completed
	w := doJSON(router, "POST", "/orders/"+order.ID+"/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "completed", data["status"])
	assert.NotNil(t, data["completed_at"])

	// completed -> deleted is not a legal move
	w = doJSON(router, "POST", "/orders/"+order.ID+"/delete", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// completed -> pending via restore, both timestamps cleared
	w = doJSON(router, "POST", "/orders/"+order.ID+"/restore", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var restored models.Order
	db.First(&restored, "id = ?", order.ID)
	assert.Equal(t, models.OrderStatusPending, restored.Status)
	assert.Nil(t, restored.CompletedAt)
	assert.Nil(t, restored.DeletedAt)

	// pending -> deleted, then deleted -> completed rejected
	w = doJSON(router, "POST", "/orders/"+order.ID+"/delete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, "POST", "/orders/"+order.ID+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// deleted -> pending via restore
	w = doJSON(router, "POST", "/orders/"+order.ID+"/restore", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRestorePendingOrderRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupKitchenRouter(db)

	order := createPendingOrder(db, "Ana", time.Now())

	w := doJSON(router, "POST", "/orders/"+order.ID+"/restore", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransitionUnknownOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupKitchenRouter(db)

	w := doJSON(router, "POST", "/orders/nope/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKitchenDisplayOrderingAndAtRisk(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupKitchenRouter(db)

	now := time.Now()
	oldest := createPendingOrder(db, "Espera Larga", now.Add(-20*time.Minute))
	newest := createPendingOrder(db, "Recién Llegado", now.Add(-2*time.Minute))
	served := createPendingOrder(db, "Ya Servido", now.Add(-30*time.Minute))
	assert.NoError(t, served.Complete(now))
	db.Save(&served)

	w := doJSON(router, "GET", "/kitchen/display", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)

	pending := data["pending"].([]interface{})
	assert.Len(t, pending, 2)

	// Longest-waiting order surfaces first and is flagged.
	first := pending[0].(map[string]interface{})
	assert.Equal(t, oldest.ID, first["id"])
	assert.True(t, first["at_risk"].(bool))
	assert.GreaterOrEqual(t, first["elapsed_minutes"].(float64), float64(models.AtRiskAfterMinutes))

	second := pending[1].(map[string]interface{})
	assert.Equal(t, newest.ID, second["id"])
	assert.False(t, second["at_risk"].(bool))

	// Completed orders are never flagged, even older ones.
	completed := data["completed"].([]interface{})
	assert.Len(t, completed, 1)
	assert.False(t, completed[0].(map[string]interface{})["at_risk"].(bool))
}
