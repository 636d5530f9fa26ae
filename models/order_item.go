package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID string `gorm:"type:varchar(36);not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID string  `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	// PriceAtTime snapshots the product price at order time; later catalog
	// edits must never change historical totals.
	PriceAtTime float64 `gorm:"type:decimal(10,2);not null" json:"price_at_time"`
	// Notes carries the flattened "Cremas: ..." prefix plus any free text,
	// which is what the kitchen cards render.
	Notes string `gorm:"type:text" json:"notes,omitempty"`
	// CondimentsJSON keeps the structured selection alongside the flattened
	// notes so nothing is lost to the free-text form.
	CondimentsJSON string    `gorm:"column:condiments;type:text" json:"-"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

// SetCondiments stores the selected condiment labels as JSON.
func (oi *OrderItem) SetCondiments(labels []string) error {
	if len(labels) == 0 {
		oi.CondimentsJSON = ""
		return nil
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	oi.CondimentsJSON = string(data)
	return nil
}

// GetCondiments returns the stored condiment labels, nil when none.
func (oi *OrderItem) GetCondiments() []string {
	if oi.CondimentsJSON == "" {
		return nil
	}
	var labels []string
	if err := json.Unmarshal([]byte(oi.CondimentsJSON), &labels); err != nil {
		return nil
	}
	return labels
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

func (oi *OrderItem) AfterCreate(tx *gorm.DB) error {
	return recordChange(tx, "order_items", oi.ID, ActionInsert)
}
