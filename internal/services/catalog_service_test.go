package services_test

import (
	"testing"

	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateAndReadProducts(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewCatalogService(repo)

	product := &models.Product{
		Name: "Kaos Polos",
		Variants: []models.ProductVariant{
			{Name: "Kaos M", SKU: "KAOS-M", Price: 100000},
			{Name: "Kaos L", SKU: "KAOS-L", Price: 100000},
		},
	}
	require.NoError(t, svc.CreateProduct(product))
	assert.NotEmpty(t, product.ID, "create assigns an id")
	for _, v := range product.Variants {
		assert.NotEmpty(t, v.ID, "create assigns variant ids")
		assert.Equal(t, product.ID, v.ProductID)
	}

	all, err := svc.GetAllProducts()
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kaos Polos", got.Name)
	assert.Len(t, got.Variants, 2)
}

func TestCatalogService_GetVariantByID(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewCatalogService(repo)

	product := &models.Product{
		Name: "Topi",
		Variants: []models.ProductVariant{
			{Name: "Topi Hitam", SKU: "TOPI-H", Price: 50000},
		},
		Promotions: []models.Promotion{percentPromo("promo-topi", 10)},
	}
	require.NoError(t, svc.CreateProduct(product))

	variant, err := svc.GetVariantByID(product.Variants[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "TOPI-H", variant.SKU)
	assert.Equal(t, int64(50000), variant.Price)

	_, err = svc.GetVariantByID("no-such-variant")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCatalogService_GetProductByIDNotFound(t *testing.T) {
	svc := services.NewCatalogService(repositories.NewMockProductRepository())

	_, err := svc.GetProductByID("no-such-product")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
