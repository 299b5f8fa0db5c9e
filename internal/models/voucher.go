package models

import (
	"time"

	"gorm.io/gorm"
)

// Voucher is a usage-limited discount code redeemed at checkout.
// Quantity 0 means unlimited redemptions; UsedCount never exceeds Quantity
// when Quantity > 0 (enforced by the ledger's conditional increment).
type Voucher struct {
	ID                string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code              string       `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=3,max=50"`
	Type              DiscountType `json:"type" gorm:"type:varchar(20)" validate:"required,oneof=percentage fixed"`
	Value             int64        `json:"value" validate:"required,gt=0"`
	MinOrderValue     int64        `json:"min_order_value" validate:"gte=0"`
	MaxDiscountAmount int64        `json:"max_discount_amount" validate:"gte=0"`
	Quantity          int          `json:"quantity" validate:"gte=0"`
	UsedCount         int          `json:"used_count" validate:"gte=0"`
	LimitPerUser      int          `json:"limit_per_user" validate:"gte=0"` // 0 = no per-user limit
	StartDate         time.Time    `json:"start_date"`
	EndDate           time.Time    `json:"end_date"`
	IsActive          bool         `json:"is_active"`
	gorm.Model
}

// ValidAt reports whether the voucher is active and inside its window.
func (v *Voucher) ValidAt(now time.Time) bool {
	return v.IsActive && !now.Before(v.StartDate) && !now.After(v.EndDate)
}

// VoucherUsage records one successful redemption. Rows are insert-only.
type VoucherUsage struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VoucherID      string    `json:"voucher_id" gorm:"index;type:varchar(36)"`
	UserID         string    `json:"user_id" gorm:"index;type:varchar(36)"`
	OrderID        string    `json:"order_id" gorm:"index;type:varchar(36)"`
	DiscountAmount int64     `json:"discount_amount"`
	UsedAt         time.Time `json:"used_at"`
}
