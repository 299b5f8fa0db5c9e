package services

import (
	"errors"
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"gorm.io/gorm"
)

// InventoryService owns all mutation of inventory_stocks rows. Allocate and
// Restore run strictly inside the transaction handed in by the caller and
// never commit on their own, so a failed checkout or cancel rolls every
// stock movement back together with the rest of the operation.
type InventoryService struct{}

// NewInventoryService creates a new InventoryService.
func NewInventoryService() *InventoryService {
	return &InventoryService{}
}

// Allocate reserves quantity units of a variant from a single warehouse and
// decrements its stock row. A line item is never split across warehouses:
// if no single warehouse holds the full quantity the allocation fails with
// ErrInsufficientStock, even when the combined total would suffice.
//
// Among the warehouses that can satisfy the quantity, the one with the most
// stock wins; ties go to the lowest warehouse id. The selected row is read
// under a row lock and decremented with a quantity >= ? guard, so two
// concurrent allocations serialize and the row can never go negative.
func (s *InventoryService) Allocate(tx *gorm.DB, variantID string, quantity int) (*models.InventoryStock, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("allocation quantity must be positive: %w", models.ErrValidation)
	}

	var stock models.InventoryStock
	err := repositories.ForUpdate(tx).
		Where("variant_id = ? AND quantity >= ?", variantID, quantity).
		Order("quantity DESC, warehouse_id ASC").
		Take(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant %s, quantity %d: %w", variantID, quantity, models.ErrInsufficientStock)
		}
		return nil, fmt.Errorf("failed to select stock for variant %s: %w", variantID, err)
	}

	res := tx.Model(&models.InventoryStock{}).
		Where("variant_id = ? AND warehouse_id = ? AND quantity >= ?", variantID, stock.WarehouseID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to decrement stock for variant %s: %w", variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		// The guard only fires if another transaction drained the row
		// between select and update, which the row lock prevents on
		// dialects that support it.
		return nil, fmt.Errorf("variant %s, quantity %d: %w", variantID, quantity, models.ErrInsufficientStock)
	}

	stock.Quantity -= quantity
	return &stock, nil
}

// Restore returns quantity units to the exact warehouse the order item was
// allocated from. An unknown (variant, warehouse) row is an error; there is
// no fallback to some other warehouse, because order items always record
// the warehouse they were fulfilled from.
func (s *InventoryService) Restore(tx *gorm.DB, variantID, warehouseID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("restore quantity must be positive: %w", models.ErrValidation)
	}

	res := tx.Model(&models.InventoryStock{}).
		Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to restore stock for variant %s: %w", variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("stock row for variant %s in warehouse %s: %w", variantID, warehouseID, models.ErrNotFound)
	}
	return nil
}

// Levels returns the current stock rows for a variant across warehouses.
func (s *InventoryService) Levels(db *gorm.DB, variantID string) ([]models.InventoryStock, error) {
	var stocks []models.InventoryStock
	if err := db.Where("variant_id = ?", variantID).Order("warehouse_id ASC").Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock levels for variant %s: %w", variantID, err)
	}
	return stocks, nil
}
