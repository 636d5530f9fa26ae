package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product categories. Cremas are conventionally priced at 0 but that is
// not enforced here.
const (
	CategorySalchipapas = "salchipapas"
	CategoryBebidas     = "bebidas"
	CategoryCremas      = "cremas"
	CategoryOtros       = "otros"
)

type Product struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(20);not null;index" json:"category"`
	ImageURL    *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// ValidCategory reports whether cat is one of the known product categories.
func ValidCategory(cat string) bool {
	switch cat {
	case CategorySalchipapas, CategoryBebidas, CategoryCremas, CategoryOtros:
		return true
	}
	return false
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Product) AfterCreate(tx *gorm.DB) error {
	return recordChange(tx, "products", p.ID, ActionInsert)
}

func (p *Product) AfterUpdate(tx *gorm.DB) error {
	return recordChange(tx, "products", p.ID, ActionUpdate)
}

func (p *Product) AfterDelete(tx *gorm.DB) error {
	return recordChange(tx, "products", p.ID, ActionDelete)
}
