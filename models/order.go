package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusDeleted   = "deleted"
)

const (
	OrderTypeLocal    = "local"
	OrderTypeDelivery = "delivery"
)

// Payment methods. Only efectivo carries cash/change amounts; the others
// are recorded, never settled.
const (
	PaymentEfectivo = "efectivo"
	PaymentYape     = "yape"
	PaymentPlin     = "plin"
	PaymentTarjeta  = "tarjeta"
)

// AtRiskAfterMinutes is how long a pending order may wait before the
// kitchen display flags it.
const AtRiskAfterMinutes = 15

type Order struct {
	ID            string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerName  string  `gorm:"type:varchar(255);not null" json:"customer_name"`
	Status        string  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Type          string  `gorm:"type:varchar(20);not null" json:"type"`
	TotalAmount   float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string  `gorm:"type:varchar(20);not null" json:"payment_method"`

	// Cash specifics, present only for efectivo.
	CashAmountProvided *float64 `gorm:"type:decimal(10,2)" json:"cash_amount_provided,omitempty"`
	ChangeAmount       *float64 `gorm:"type:decimal(10,2)" json:"change_amount,omitempty"`

	// Delivery specifics, present only for type=delivery.
	DeliveryAddress   string `gorm:"type:varchar(255)" json:"delivery_address,omitempty"`
	DeliveryReference string `gorm:"type:varchar(255)" json:"delivery_reference,omitempty"`
	DeliveryMapsURL   string `gorm:"type:varchar(255)" json:"delivery_maps_url,omitempty"`
	ContactPhone      string `gorm:"type:varchar(32)" json:"contact_phone,omitempty"`

	// Free-text notes, used only for non-delivery orders.
	GeneralNotes string `gorm:"type:text" json:"general_notes,omitempty"`

	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func ValidOrderType(t string) bool {
	return t == OrderTypeLocal || t == OrderTypeDelivery
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentEfectivo, PaymentYape, PaymentPlin, PaymentTarjeta:
		return true
	}
	return false
}

// Complete moves a pending order to completed and stamps CompletedAt.
func (o *Order) Complete(now time.Time) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("order is %s, only pending orders can be completed", o.Status)
	}
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	return nil
}

// SoftDelete moves a pending order to deleted and stamps DeletedAt.
// Completed orders cannot be deleted directly; restore them first.
func (o *Order) SoftDelete(now time.Time) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("order is %s, only pending orders can be deleted", o.Status)
	}
	o.Status = OrderStatusDeleted
	o.DeletedAt = &now
	return nil
}

// Restore brings a completed or deleted order back to pending and clears
// both timestamps.
func (o *Order) Restore() error {
	if o.Status != OrderStatusCompleted && o.Status != OrderStatusDeleted {
		return fmt.Errorf("order is %s, nothing to restore", o.Status)
	}
	o.Status = OrderStatusPending
	o.CompletedAt = nil
	o.DeletedAt = nil
	return nil
}

// ElapsedMinutes is the whole minutes since the order was created.
func (o *Order) ElapsedMinutes(now time.Time) int {
	return int(now.Sub(o.CreatedAt).Minutes())
}

// AtRisk reports whether a still-pending order has been waiting too long.
func (o *Order) AtRisk(now time.Time) bool {
	return o.Status == OrderStatusPending && o.ElapsedMinutes(now) >= AtRiskAfterMinutes
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (o *Order) AfterCreate(tx *gorm.DB) error {
	return recordChange(tx, "orders", o.ID, ActionInsert)
}

func (o *Order) AfterUpdate(tx *gorm.DB) error {
	return recordChange(tx, "orders", o.ID, ActionUpdate)
}
