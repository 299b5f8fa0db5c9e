package services

import (
	"errors"
	"fmt"
	"time"

	"lapak/internal/models"
	"lapak/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountQuote is the result of a successful voucher check.
type DiscountQuote struct {
	VoucherID      string `json:"voucher_id"`
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discount_amount"`
}

// VoucherService is the ledger for voucher redemptions. Check is a read-only
// validation; Redeem consumes one use with a conditional increment so that
// at most Quantity redemptions ever succeed, whatever the concurrency.
type VoucherService struct {
	db *gorm.DB
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(db *gorm.DB) *VoucherService {
	return &VoucherService{
		db: db,
	}
}

// Check validates a voucher for a user against its window, remaining
// quantity, minimum order value and per-user limit, and quotes the discount
// it would grant on orderTotal. The quote is clamped to orderTotal so a
// voucher can never discount more than the payable amount.
//
// tx may be nil for a standalone quote outside any transaction; the order
// orchestrator passes its own transaction so the read sees its state.
func (s *VoucherService) Check(tx *gorm.DB, code, userID string, orderTotal int64) (*DiscountQuote, error) {
	db := tx
	if db == nil {
		db = s.db
	}

	var voucher models.Voucher
	if err := db.First(&voucher, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewVoucherError(code, models.VoucherNotFound)
		}
		return nil, fmt.Errorf("failed to load voucher %s: %w", code, err)
	}

	if !voucher.ValidAt(time.Now()) {
		return nil, models.NewVoucherError(code, models.VoucherInactive)
	}
	if voucher.Quantity > 0 && voucher.UsedCount >= voucher.Quantity {
		return nil, models.NewVoucherError(code, models.VoucherExhausted)
	}
	if orderTotal < voucher.MinOrderValue {
		return nil, models.NewVoucherError(code, models.VoucherBelowMinimum)
	}
	if voucher.LimitPerUser > 0 {
		var used int64
		if err := db.Model(&models.VoucherUsage{}).
			Where("voucher_id = ? AND user_id = ?", voucher.ID, userID).
			Count(&used).Error; err != nil {
			return nil, fmt.Errorf("failed to count usages for voucher %s: %w", code, err)
		}
		if used >= int64(voucher.LimitPerUser) {
			return nil, models.NewVoucherError(code, models.VoucherUserLimit)
		}
	}

	return &DiscountQuote{
		VoucherID:      voucher.ID,
		Code:           voucher.Code,
		DiscountAmount: pricing.Discount(voucher.Type, voucher.Value, voucher.MaxDiscountAmount, orderTotal),
	}, nil
}

// Redeem consumes one use of the voucher and records the usage row, all
// inside the caller's transaction. The increment is a single conditional
// update, not read-then-write: if the guard matches no row the voucher was
// exhausted by a concurrent redemption since Check, and the redemption
// fails with quantity_exhausted so the caller rolls everything back.
func (s *VoucherService) Redeem(tx *gorm.DB, code, userID, orderID string, discountAmount int64) error {
	var voucher models.Voucher
	if err := tx.First(&voucher, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewVoucherError(code, models.VoucherNotFound)
		}
		return fmt.Errorf("failed to load voucher %s for redeem: %w", code, err)
	}

	res := tx.Model(&models.Voucher{}).
		Where("id = ? AND (quantity = 0 OR used_count < quantity)", voucher.ID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment used_count for voucher %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewVoucherError(code, models.VoucherExhausted)
	}

	usage := models.VoucherUsage{
		ID:             uuid.New().String(),
		VoucherID:      voucher.ID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discountAmount,
		UsedAt:         time.Now(),
	}
	if err := tx.Create(&usage).Error; err != nil {
		return fmt.Errorf("failed to record usage for voucher %s: %w", code, err)
	}
	return nil
}
