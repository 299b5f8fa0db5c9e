package services_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway sqlite database with the full schema. A file
// in t.TempDir() rather than :memory: so multiple connections see the same
// data, which is how the services run in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "lapak_test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Warehouse{},
		&models.InventoryStock{},
		&models.Promotion{},
		&models.Voucher{},
		&models.VoucherUsage{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedStock inserts inventory rows for a variant, one per warehouse.
func seedStock(t *testing.T, db *gorm.DB, variantID string, byWarehouse map[string]int) {
	t.Helper()
	for warehouseID, qty := range byWarehouse {
		require.NoError(t, db.Create(&models.InventoryStock{
			VariantID:   variantID,
			WarehouseID: warehouseID,
			Quantity:    qty,
		}).Error)
	}
}

// stockLevels reads back quantity per warehouse for a variant.
func stockLevels(t *testing.T, db *gorm.DB, variantID string) map[string]int {
	t.Helper()
	rows, err := services.NewInventoryService().Levels(db, variantID)
	require.NoError(t, err)
	levels := make(map[string]int, len(rows))
	for _, r := range rows {
		levels[r.WarehouseID] = r.Quantity
	}
	return levels
}

// seedVariant creates a product owning one variant, optionally on promotion.
func seedVariant(t *testing.T, db *gorm.DB, variantID string, price int64, promos ...models.Promotion) {
	t.Helper()
	product := models.Product{
		ID:   "prod-" + variantID,
		Name: "Product " + variantID,
		Variants: []models.ProductVariant{
			{ID: variantID, Name: "Variant " + variantID, SKU: "SKU-" + variantID, Price: price, Attributes: `{"size":"M"}`},
		},
		Promotions: promos,
	}
	require.NoError(t, db.Create(&product).Error)
}

// seedAddress creates a shipping address owned by userID.
func seedAddress(t *testing.T, db *gorm.DB, addressID, userID string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Address{
		ID:         addressID,
		UserID:     userID,
		Recipient:  "Budi Santoso",
		Phone:      "+62811111111",
		Street:     "Jl. Merdeka 1",
		City:       "Jakarta",
		PostalCode: "10110",
	}).Error)
}

// percentPromo builds a live percentage promotion.
func percentPromo(id string, value int64) models.Promotion {
	return models.Promotion{
		ID:        id,
		Name:      "promo " + id,
		Type:      models.DiscountPercentage,
		Value:     value,
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(time.Hour),
		IsActive:  true,
	}
}

// recordingPublisher captures published event bodies for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	bodies []string
}

func (p *recordingPublisher) Publish(_, _ string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, string(body))
	return nil
}

func (p *recordingPublisher) events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.bodies...)
}
