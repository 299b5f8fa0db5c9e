package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lapak/internal/handlers"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the real services over a throwaway sqlite database with
// the auth middleware replaced by a stub that injects the given user id.
func newTestApp(t *testing.T, userID string) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "lapak_handlers.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{}, &models.Product{}, &models.ProductVariant{},
		&models.Warehouse{}, &models.InventoryStock{}, &models.Promotion{},
		&models.Voucher{}, &models.VoucherUsage{}, &models.Order{}, &models.OrderItem{},
	))

	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	voucherService := services.NewVoucherService(db)
	orderService := services.NewOrderService(db, orderRepo, productRepo, addressRepo,
		services.NewInventoryService(), voucherService, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	handlers.NewProductHandler(services.NewCatalogService(productRepo)).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewVoucherHandler(voucherService).RegisterRoutes(apiV1)
	return app, db
}

func seedCheckoutFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Address{
		ID: "addr-1", UserID: "user-1", Recipient: "Budi", Phone: "+62811111111",
		Street: "Jl. Merdeka 1", City: "Jakarta", PostalCode: "10110",
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: "prod-1", Name: "Kaos Polos",
		Variants: []models.ProductVariant{
			{ID: "var-1", Name: "Kaos M", SKU: "KAOS-M", Price: 100000},
		},
	}).Error)
	require.NoError(t, db.Create(&models.InventoryStock{
		VariantID: "var-1", WarehouseID: "wh-a", Quantity: 10,
	}).Error)
	require.NoError(t, db.Create(&models.Voucher{
		ID: "v-1", Code: "HEMAT20", Type: models.DiscountFixed, Value: 20000,
		Quantity: 10, IsActive: true,
		StartDate: time.Now().Add(-time.Hour), EndDate: time.Now().Add(time.Hour),
	}).Error)
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload interface{}) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeOrder(t *testing.T, resp *http.Response) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	return order
}

func TestOrderHandler_CheckoutFlow(t *testing.T) {
	app, db := newTestApp(t, "user-1")
	seedCheckoutFixture(t, db)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders", fiber.Map{
		"address_id":   "addr-1",
		"items":        []fiber.Map{{"variant_id": "var-1", "quantity": 2}},
		"voucher_code": "HEMAT20",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeOrder(t, resp)
	assert.Equal(t, int64(180000), order.TotalAmount) // 200,000 - 20,000 voucher
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "wh-a", order.Items[0].WarehouseID)

	// The order shows up in the user's listing.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// Cancel returns the cancelled order and the stock comes back.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/cancel", order.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cancelled := decodeOrder(t, resp)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	var stock models.InventoryStock
	require.NoError(t, db.First(&stock, "variant_id = ? AND warehouse_id = ?", "var-1", "wh-a").Error)
	assert.Equal(t, 10, stock.Quantity)
}

func TestOrderHandler_CheckoutValidation(t *testing.T) {
	app, db := newTestApp(t, "user-1")
	seedCheckoutFixture(t, db)

	// Missing items.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders", fiber.Map{
		"address_id": "addr-1",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Unknown address.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", fiber.Map{
		"address_id": "addr-ghost",
		"items":      []fiber.Map{{"variant_id": "var-1", "quantity": 1}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// More than any single warehouse can serve.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders", fiber.Map{
		"address_id": "addr-1",
		"items":      []fiber.Map{{"variant_id": "var-1", "quantity": 99}},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestOrderHandler_OtherUsersOrdersHidden(t *testing.T) {
	app, db := newTestApp(t, "user-1")
	seedCheckoutFixture(t, db)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders", fiber.Map{
		"address_id": "addr-1",
		"items":      []fiber.Map{{"variant_id": "var-1", "quantity": 1}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeOrder(t, resp)

	// A different caller against the same database cannot read or cancel it.
	appAsIntruder, _ := newTestAppSharedDB(t, db, "user-2")
	resp = doJSON(t, appAsIntruder, http.MethodGet, "/api/v1/orders/"+order.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, appAsIntruder, http.MethodPost, "/api/v1/orders/"+order.ID+"/cancel", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// newTestAppSharedDB builds an app over an existing database for a caller.
func newTestAppSharedDB(t *testing.T, db *gorm.DB, userID string) (*fiber.App, *gorm.DB) {
	t.Helper()
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	voucherService := services.NewVoucherService(db)
	orderService := services.NewOrderService(db, orderRepo, productRepo, addressRepo,
		services.NewInventoryService(), voucherService, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	return app, db
}

func TestVoucherHandler_Check(t *testing.T) {
	app, db := newTestApp(t, "user-1")
	seedCheckoutFixture(t, db)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/vouchers/check", fiber.Map{
		"code":        "HEMAT20",
		"order_total": 200000,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var quote services.DiscountQuote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
	assert.Equal(t, int64(20000), quote.DiscountAmount)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/vouchers/check", fiber.Map{
		"code":        "NGACO",
		"order_total": 200000,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_AdvanceStatus(t *testing.T) {
	app, db := newTestApp(t, "user-1")
	seedCheckoutFixture(t, db)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders", fiber.Map{
		"address_id": "addr-1",
		"items":      []fiber.Map{{"variant_id": "var-1", "quantity": 1}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeOrder(t, resp)

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", fiber.Map{
		"status": "processing",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decodeOrder(t, resp)
	assert.Equal(t, models.StatusProcessing, updated.Status)

	// Skipping straight to delivered is an illegal transition.
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/orders/"+order.ID+"/status", fiber.Map{
		"status": "delivered",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestProductHandler_GetProducts(t *testing.T) {
	app, db := newTestApp(t, "user-1")
	seedCheckoutFixture(t, db)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var products []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Len(t, products[0].Variants, 1)
}
