package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/cart"
	"github.com/lasantapapa/pos-app/kds"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/services"
	"github.com/lasantapapa/pos-app/utils"
)

type CartController struct {
	DB      *gorm.DB
	Store   *cart.Store
	Catalog *services.CatalogCache
}

func NewCartController(db *gorm.DB, store *cart.Store, catalog *services.CatalogCache) *CartController {
	return &CartController{DB: db, Store: store, Catalog: catalog}
}

func (cc *CartController) sessionCart(c *gin.Context) *cart.Cart {
	return cc.Store.Get(c.Param("session_id"))
}

// GetCart -> current lines plus the recomputed total.
func (cc *CartController) GetCart(c *gin.Context) {
	ct := cc.sessionCart(c)
	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items":           ct.Lines(),
		"total":           ct.Total(),
		"total_formatted": utils.FormatSoles(ct.Total()),
	})
}

// AddItem -> add one unit of a product; an existing line for the same
// product gains quantity instead of duplicating.
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := cc.findProduct(req.ProductID)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	line := cc.sessionCart(c).AddProduct(*product)
	utils.RespondJSON(c, http.StatusOK, "Item added", line)
}

// UpdateItem -> change quantity and/or notes of one line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	lineID := c.Param("line_id")

	var req struct {
		Quantity *int    `json:"quantity"`
		Notes    *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ct := cc.sessionCart(c)
	found := false
	if req.Quantity != nil {
		found = ct.SetQuantity(lineID, *req.Quantity) || found
	}
	if req.Notes != nil {
		found = ct.SetNotes(lineID, *req.Notes) || found
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart line not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item updated", gin.H{"line_id": lineID})
}

// ToggleCondiment -> flip one crema label on a line.
func (cc *CartController) ToggleCondiment(c *gin.Context) {
	lineID := c.Param("line_id")

	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !cc.sessionCart(c).ToggleCondiment(lineID, req.Label) {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart line not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Condiment toggled", gin.H{"line_id": lineID})
}

// RemoveItem
func (cc *CartController) RemoveItem(c *gin.Context) {
	lineID := c.Param("line_id")

	if !cc.sessionCart(c).RemoveLine(lineID) {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart line not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{"line_id": lineID})
}

// ClearCart
func (cc *CartController) ClearCart(c *gin.Context) {
	cc.sessionCart(c).Clear()
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

type checkoutRequest struct {
	CustomerName       string   `json:"customer_name" binding:"required"`
	Type               string   `json:"type" binding:"required"`
	PaymentMethod      string   `json:"payment_method" binding:"required"`
	CashAmountProvided *float64 `json:"cash_amount_provided"`
	GeneralNotes       string   `json:"general_notes"`
	DeliveryAddress    string   `json:"delivery_address"`
	DeliveryReference  string   `json:"delivery_reference"`
	DeliveryMapsURL    string   `json:"delivery_maps_url"`
	ContactPhone       string   `json:"contact_phone"`
}

// Checkout turns the cart into a persisted order with its lines, inside
// one transaction, then clears the cart. Validation failures write nothing.
func (cc *CartController) Checkout(c *gin.Context) {
	ct := cc.sessionCart(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	lines := ct.Lines()
	if len(lines) == 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrCartEmpty)
		return
	}

	if !models.ValidOrderType(req.Type) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order type %q", req.Type))
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown payment method %q", req.PaymentMethod))
		return
	}
	if req.Type == models.OrderTypeDelivery {
		if strings.TrimSpace(req.DeliveryAddress) == "" || strings.TrimSpace(req.ContactPhone) == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("delivery orders need an address and a contact phone"))
			return
		}
	}

	total := ct.Total()

	order := models.Order{
		CustomerName:  req.CustomerName,
		Status:        models.OrderStatusPending,
		Type:          req.Type,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	if req.PaymentMethod == models.PaymentEfectivo {
		if req.CashAmountProvided == nil || *req.CashAmountProvided < total {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("cash received must cover the total of %s", utils.FormatSoles(total)))
			return
		}
		change := utils.Round2(*req.CashAmountProvided - total)
		order.CashAmountProvided = req.CashAmountProvided
		order.ChangeAmount = &change
	}

	if req.Type == models.OrderTypeDelivery {
		order.DeliveryAddress = req.DeliveryAddress
		order.DeliveryReference = req.DeliveryReference
		order.DeliveryMapsURL = req.DeliveryMapsURL
		order.ContactPhone = req.ContactPhone
	} else {
		order.GeneralNotes = req.GeneralNotes
	}

	tx := cc.DB.Begin()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			PriceAtTime: line.PriceAtTime,
			Notes:       flattenNotes(line),
			CreatedAt:   order.CreatedAt,
		}
		if err := item.SetCondiments(line.Condiments); err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		items = append(items, item)
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ct.Clear()
	order.Items = items

	kds.BroadcastKitchenNotification(fmt.Sprintf("Nuevo pedido de %s (%s)", order.CustomerName, order.Type))

	utils.RespondJSON(c, http.StatusCreated, "Order sent to kitchen", order)
}

// flattenNotes joins the selected cremas into the note the kitchen card
// renders, keeping any free text the cashier typed after them.
func flattenNotes(line cart.Line) string {
	if len(line.Condiments) == 0 {
		return line.Notes
	}
	return strings.TrimSpace(fmt.Sprintf("Cremas: %s. %s", strings.Join(line.Condiments, ", "), line.Notes))
}

func (cc *CartController) findProduct(id string) (*models.Product, error) {
	if products, err := cc.Catalog.All(); err == nil {
		for i := range products {
			if products[i].ID == id {
				return &products[i], nil
			}
		}
	}

	// Not in the cache; the catalog may be mid-refresh. Fall back to the DB.
	var product models.Product
	if err := cc.DB.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
