package services

import (
	"sync"

	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/utils"
)

// CatalogCache holds the sellable product list for the caja and admin
// views. It is read-through: a failed refresh keeps whatever list was
// cached before (possibly empty) and reports the error; callers decide
// whether to re-trigger, nothing retries automatically.
type CatalogCache struct {
	DB *gorm.DB

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
}

func NewCatalogCache(db *gorm.DB) *CatalogCache {
	return &CatalogCache{DB: db}
}

// Refresh replaces the cached list with the current product table.
func (cc *CatalogCache) Refresh() error {
	var products []models.Product
	if err := cc.DB.Order("created_at asc").Find(&products).Error; err != nil {
		utils.ErrorLogger.Printf("catalog refresh failed, keeping cached list: %v", err)
		return err
	}

	cc.mu.Lock()
	cc.products = products
	cc.loaded = true
	cc.mu.Unlock()
	return nil
}

// Invalidate forces the next read to hit the database again.
func (cc *CatalogCache) Invalidate() {
	cc.mu.Lock()
	cc.loaded = false
	cc.mu.Unlock()
}

// All returns the cached products, fetching once if nothing is cached yet.
func (cc *CatalogCache) All() ([]models.Product, error) {
	cc.mu.RLock()
	loaded := cc.loaded
	cc.mu.RUnlock()

	var err error
	if !loaded {
		err = cc.Refresh()
	}

	cc.mu.RLock()
	defer cc.mu.RUnlock()
	out := make([]models.Product, len(cc.products))
	copy(out, cc.products)
	return out, err
}

// ByCategory filters the cached list for one category tab.
func (cc *CatalogCache) ByCategory(category string) ([]models.Product, error) {
	all, err := cc.All()
	if err != nil && len(all) == 0 {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
