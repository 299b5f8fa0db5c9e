package models

import "time"

// InventoryStock tracks on-hand quantity per (variant, warehouse). Rows are
// mutated only by the inventory allocator inside the caller's transaction.
type InventoryStock struct {
	VariantID    string    `json:"variant_id" gorm:"primaryKey;type:varchar(36)"`
	WarehouseID  string    `json:"warehouse_id" gorm:"primaryKey;type:varchar(36)"`
	Quantity     int       `json:"quantity" validate:"gte=0"`
	MinThreshold int       `json:"min_threshold" validate:"gte=0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table name explicit since the model has no gorm.Model embed.
func (InventoryStock) TableName() string {
	return "inventory_stocks"
}
