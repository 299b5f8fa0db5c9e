package handlers

import (
	"fmt"
	"log"

	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VoucherHandler handles HTTP requests for voucher quotes.
type VoucherHandler struct {
	service  *services.VoucherService
	validate *validator.Validate
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(service *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the voucher routes with the Fiber app.
func (h *VoucherHandler) RegisterRoutes(router fiber.Router) {
	voucherRoutes := router.Group("/vouchers")
	voucherRoutes.Post("/check", h.HandleCheckVoucher)
}

// CheckVoucherRequest asks for a discount quote before checkout. Redemption
// itself only ever happens inside order creation.
type CheckVoucherRequest struct {
	Code       string `json:"code" validate:"required,min=3,max=50"`
	OrderTotal int64  `json:"order_total" validate:"required,gt=0"`
}

// HandleCheckVoucher validates a voucher for the caller and quotes the
// discount it would grant on the given order total.
func (h *VoucherHandler) HandleCheckVoucher(c *fiber.Ctx) error {
	uid, ok := userID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing user identity",
		})
	}

	var req CheckVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing voucher check request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	quote, err := h.service.Check(nil, req.Code, uid, req.OrderTotal)
	if err != nil {
		log.Printf("Voucher check failed for code %s: %v", req.Code, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Voucher cannot be applied",
			"error":   err.Error(),
		})
	}

	return c.JSON(quote)
}
