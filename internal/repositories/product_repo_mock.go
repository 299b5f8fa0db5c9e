package repositories

import (
	"fmt"
	"sync"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
		product.Variants[i].ProductID = product.ID
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s for update: %w", product.ID, models.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// GetVariantByID returns a variant by scanning the stored products. The tx
// argument is ignored; the mock has no transactions.
func (r *MockProductRepository) GetVariantByID(_ *gorm.DB, id string) (*models.ProductVariant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		for i := range p.Variants {
			if p.Variants[i].ID == id {
				v := p.Variants[i]
				return &v, nil
			}
		}
	}
	return nil, fmt.Errorf("variant with ID %s: %w", id, models.ErrNotFound)
}

// GetVariantPromotions returns the owning product's promotions.
func (r *MockProductRepository) GetVariantPromotions(_ *gorm.DB, variantID string) ([]models.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		for i := range p.Variants {
			if p.Variants[i].ID == variantID {
				return p.Promotions, nil
			}
		}
	}
	return nil, fmt.Errorf("variant with ID %s: %w", variantID, models.ErrNotFound)
}
