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

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	return router
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	now := time.Now()
	older := createPendingOrder(db, "Primero", now.Add(-10*time.Minute))
	newer := createPendingOrder(db, "Segundo", now)

	w := doJSON(router, "GET", "/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	list := decodeList(t, w.Body.Bytes())
	assert.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].(map[string]interface{})["id"])
	assert.Equal(t, older.ID, list[1].(map[string]interface{})["id"])
}

func TestGetOrderByIDEmbedsLines(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	grande, _ := seedProducts(db)
	router := setupOrderRouter(db)

	order := createPendingOrder(db, "Ana", time.Now())
	item := models.OrderItem{
		OrderID:     order.ID,
		ProductID:   grande.ID,
		Quantity:    2,
		PriceAtTime: grande.Price,
		CreatedAt:   order.CreatedAt,
	}
	assert.NoError(t, db.Create(&item).Error)

	w := doJSON(router, "GET", "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	items := data["items"].([]interface{})
	assert.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, float64(2), line["quantity"])
	product := line["product"].(map[string]interface{})
	assert.Equal(t, "Salchipapa Grande", product["name"])
}

func TestGetUnknownOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupOrderRouter(db)

	w := doJSON(router, "GET", "/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
