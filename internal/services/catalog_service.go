package services

import (
	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CatalogService handles read access to products and variants. The
// fulfillment core reads the catalog; category/brand administration lives
// in a separate service.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products with their variants.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetVariantByID retrieves a single purchasable variant.
func (s *CatalogService) GetVariantByID(id string) (*models.ProductVariant, error) {
	return s.repo.GetVariantByID(nil, id)
}

// CreateProduct stores a new product with its variants (seeding/admin).
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}
