package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountType says how a promotion or voucher value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion is a time-windowed discount attached to products. The fulfillment
// core only ever reads promotions; CRUD lives outside this service.
type Promotion struct {
	ID                string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name              string       `json:"name" validate:"required,min=3,max=100"`
	Type              DiscountType `json:"type" gorm:"type:varchar(20)" validate:"required,oneof=percentage fixed"`
	Value             int64        `json:"value" validate:"required,gt=0"`
	MaxDiscountAmount int64        `json:"max_discount_amount" validate:"gte=0"` // cap for percentage type, 0 = uncapped
	StartDate         time.Time    `json:"start_date"`
	EndDate           time.Time    `json:"end_date"`
	IsActive          bool         `json:"is_active"`
	gorm.Model
}

// ApplicableAt reports whether the promotion is live at the given instant.
func (p *Promotion) ApplicableAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate)
}
