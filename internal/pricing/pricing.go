// Package pricing computes promotion and voucher discounts. All functions are
// pure: no I/O, no clock reads, so callers pass the evaluation instant.
package pricing

import (
	"math"
	"time"

	"lapak/internal/models"
)

// Discount computes the raw discount for one percentage-or-fixed rule against
// a base amount. Percentage values are rounded half away from zero and capped
// by maxDiscount when maxDiscount > 0. The result never exceeds base.
func Discount(kind models.DiscountType, value, maxDiscount, base int64) int64 {
	var d int64
	switch kind {
	case models.DiscountPercentage:
		d = int64(math.Round(float64(base) * float64(value) / 100))
		if maxDiscount > 0 && d > maxDiscount {
			d = maxDiscount
		}
	case models.DiscountFixed:
		d = value
	default:
		return 0
	}
	if d > base {
		d = base
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Quote returns the unit price and discount for an item given its base price
// and candidate promotions. Only promotions active at now are considered; the
// one yielding the largest discount wins, ties broken by the lowest promotion
// id so the result is deterministic for a fixed input.
func Quote(originalPrice int64, promotions []models.Promotion, now time.Time) (unitPrice, discountAmount int64) {
	var best int64
	var bestID string
	for i := range promotions {
		p := &promotions[i]
		if !p.ApplicableAt(now) {
			continue
		}
		d := Discount(p.Type, p.Value, p.MaxDiscountAmount, originalPrice)
		if d > best || (d == best && d > 0 && (bestID == "" || p.ID < bestID)) {
			best = d
			bestID = p.ID
		}
	}
	return originalPrice - best, best
}
