package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lapak/internal/models"
	"lapak/internal/pricing"
	"lapak/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventPublisher is the fire-and-forget sink for order lifecycle events.
// Publish failures are logged and swallowed; they never abort an order.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutItem is one requested order line.
type CheckoutItem struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// OrderService handles business logic related to orders: checkout, status
// transitions and cancellation with stock restoration. Every mutating
// operation runs in a single database transaction composing the inventory
// allocator and the voucher ledger, so a failure at any step leaves no
// decremented stock, no voucher usage and no partial order behind.
type OrderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	addressRepo repositories.AddressRepository
	inventory   *InventoryService
	vouchers    *VoucherService
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	addressRepo repositories.AddressRepository,
	inventory *InventoryService,
	vouchers *VoucherService,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		inventory:   inventory,
		vouchers:    vouchers,
		publisher:   publisher,
	}
}

// GetOrdersByUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetAllByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CreateOrder converts a checkout request into a persisted order. Inside one
// transaction it snapshots the shipping address, allocates stock and prices
// every line item, optionally redeems a voucher against the accumulated
// subtotal, and persists the order with its items. The order total is the
// item subtotals minus the voucher discount, floored at zero.
func (s *OrderService) CreateOrder(userID, addressID string, items []CheckoutItem, voucherCode string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", models.ErrValidation)
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		address, err := s.addressRepo.Resolve(tx, addressID, userID)
		if err != nil {
			return err
		}
		addressSnapshot, err := address.Snapshot()
		if err != nil {
			return fmt.Errorf("failed to snapshot address %s: %w", addressID, err)
		}

		now := time.Now()
		var orderItems []models.OrderItem
		var subtotal int64

		for _, item := range items {
			stock, err := s.inventory.Allocate(tx, item.VariantID, item.Quantity)
			if err != nil {
				return err
			}
			variant, err := s.productRepo.GetVariantByID(tx, item.VariantID)
			if err != nil {
				return err
			}
			promotions, err := s.productRepo.GetVariantPromotions(tx, item.VariantID)
			if err != nil {
				return err
			}
			unitPrice, discount := pricing.Quote(variant.Price, promotions, now)
			snapshot, err := models.SnapshotVariant(variant)
			if err != nil {
				return fmt.Errorf("failed to snapshot variant %s: %w", item.VariantID, err)
			}

			line := models.OrderItem{
				ID:             uuid.New().String(),
				VariantID:      item.VariantID,
				WarehouseID:    stock.WarehouseID,
				Quantity:       item.Quantity,
				OriginalPrice:  variant.Price,
				DiscountAmount: discount,
				UnitPrice:      unitPrice,
				Subtotal:       unitPrice * int64(item.Quantity),
				Snapshot:       snapshot,
			}
			orderItems = append(orderItems, line)
			subtotal += line.Subtotal
		}

		newOrder := &models.Order{
			ID:              uuid.New().String(),
			UserID:          userID,
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentUnpaid,
			AddressSnapshot: addressSnapshot,
			Items:           orderItems,
		}

		var voucherDiscount int64
		if voucherCode != "" {
			quote, err := s.vouchers.Check(tx, voucherCode, userID, subtotal)
			if err != nil {
				return err
			}
			if err := s.vouchers.Redeem(tx, voucherCode, userID, newOrder.ID, quote.DiscountAmount); err != nil {
				return err
			}
			voucherDiscount = quote.DiscountAmount
			newOrder.VoucherCode = voucherCode
		}

		total := subtotal - voucherDiscount
		if total < 0 {
			total = 0
		}
		newOrder.TotalAmount = total
		newOrder.VoucherDiscount = voucherDiscount

		if err := s.orderRepo.Create(tx, newOrder); err != nil {
			return err
		}
		order = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent("order.created", order)
	return order, nil
}

// Cancel cancels an order and restores every line item's stock to the exact
// warehouse it was allocated from. Cancelling an already-cancelled order is
// an idempotent no-op that touches no stock; a delivered order cannot be
// cancelled. The order row is locked for the duration so two concurrent
// cancels cannot both restore.
func (s *OrderService) Cancel(orderID string) (*models.Order, error) {
	var cancelled *models.Order
	alreadyCancelled := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetForUpdate(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status == models.StatusCancelled {
			cancelled = order
			alreadyCancelled = true
			return nil
		}
		if !models.CanTransition(order.Status, models.StatusCancelled) {
			return fmt.Errorf("cannot cancel order %s in status %s: %w", orderID, order.Status, models.ErrInvalidTransition)
		}

		for _, item := range order.Items {
			if err := s.inventory.Restore(tx, item.VariantID, item.WarehouseID, item.Quantity); err != nil {
				return err
			}
		}
		if err := s.orderRepo.UpdateStatus(tx, order.ID, models.StatusCancelled); err != nil {
			return err
		}
		order.Status = models.StatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !alreadyCancelled {
		s.publishOrderEvent("order.cancelled", cancelled)
	}
	return cancelled, nil
}

// AdvanceStatus moves an order to the next lifecycle status if the
// transition is legal. Cancellation is routed through Cancel so stock
// restoration can never be bypassed; all other transitions have no stock
// side effects.
func (s *OrderService) AdvanceStatus(orderID string, next models.OrderStatus) (*models.Order, error) {
	if !models.IsValidStatus(next) {
		return nil, fmt.Errorf("unknown order status %q: %w", next, models.ErrValidation)
	}
	if next == models.StatusCancelled {
		return s.Cancel(orderID)
	}

	var updated *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.GetForUpdate(tx, orderID)
		if err != nil {
			return err
		}
		if !models.CanTransition(order.Status, next) {
			return fmt.Errorf("order %s cannot move from %s to %s: %w", orderID, order.Status, next, models.ErrInvalidTransition)
		}
		if err := s.orderRepo.UpdateStatus(tx, order.ID, next); err != nil {
			return err
		}
		order.Status = next
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent("order.status_changed", updated)
	return updated, nil
}

// publishOrderEvent emits an order lifecycle event for external consumers
// (audit log, notifications). Events are best-effort: a publish failure is
// logged and the already-committed order stands.
func (s *OrderService) publishOrderEvent(event string, order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}

	payload := map[string]interface{}{
		"event":        event,
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", event, order.ID, err)
		return
	}
	if err := s.publisher.Publish("", "order_events", body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event, order.ID, err)
	}
}
