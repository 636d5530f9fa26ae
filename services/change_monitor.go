package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/kds"
	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/utils"
)

// ChangeMonitor polls the db_changes feed and turns rows into websocket
// events. A burst of changes produces one event per row; displays respond
// with a full re-fetch each time, so duplicate events are harmless.
type ChangeMonitor struct {
	DB       *gorm.DB
	Catalog  *CatalogCache
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB, catalog *CatalogCache) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Catalog:  catalog,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "orders", "order_items":
			cm.processOrderChange(change)
		case "products":
			cm.processProductChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		tx.Rollback()
		return
	}

	if len(changes) > 0 {
		utils.InfoLogger.Printf("Processed %d change(s)", len(changes))
	}
}

func (cm *ChangeMonitor) processOrderChange(change models.DBChange) {
	orderID := change.RecordID
	if change.TableName == "order_items" {
		var item models.OrderItem
		if err := cm.DB.First(&item, "id = ?", change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching order item: %v", err)
			return
		}
		orderID = item.OrderID
	}

	var order models.Order
	if err := cm.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching order: %v", err)
		return
	}

	kds.BroadcastOrderUpdate(order)
}

func (cm *ChangeMonitor) processProductChange(change models.DBChange) {
	if cm.Catalog != nil {
		cm.Catalog.Invalidate()
	}
	kds.BroadcastCatalogUpdate()
}
