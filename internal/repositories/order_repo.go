package repositories

import (
	"lapak/internal/models"

	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access. Write methods
// take the caller's transaction: orders are only ever created or mutated
// inside the fulfillment transaction that also moves stock and vouchers.
type OrderRepository interface {
	GetAllByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetForUpdate(tx *gorm.DB, id string) (*models.Order, error)
	Create(tx *gorm.DB, order *models.Order) error
	UpdateStatus(tx *gorm.DB, id string, status models.OrderStatus) error
}
