package repositories

import (
	"lapak/internal/models"

	"gorm.io/gorm"
)

// ProductRepository defines the interface for catalog data access. The
// fulfillment core only reads variants and their promotions; the write
// methods exist for seeding and the admin surface. The variant reads take
// the caller's transaction (nil for a standalone read) so checkout sees a
// snapshot consistent with its own stock movements.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	GetVariantByID(tx *gorm.DB, id string) (*models.ProductVariant, error)
	GetVariantPromotions(tx *gorm.DB, variantID string) ([]models.Promotion, error)
}
