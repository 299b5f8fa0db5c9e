package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// PaymentStatus values for Order.PaymentStatus.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Order is a customer order. Monetary fields are integer minor-currency units
// and are immutable after creation: TotalAmount always equals the sum of the
// item subtotals minus VoucherDiscount, floored at zero.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	PaymentStatus   string      `json:"payment_status" gorm:"type:varchar(20)"`
	ShippingStatus  string      `json:"shipping_status" gorm:"type:varchar(50)"`
	TotalAmount     int64       `json:"total_amount"`
	VoucherCode     string      `json:"voucher_code,omitempty" gorm:"type:varchar(50)"`
	VoucherDiscount int64       `json:"voucher_discount"`
	AddressSnapshot string      `json:"address_snapshot" gorm:"type:text"` // JSON copy of the shipping address at order time
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	gorm.Model
}

// OrderItem is one purchased line. It references the variant and warehouse by
// id only; everything needed to render or audit the line later is frozen in
// the price columns and the product snapshot.
type OrderItem struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID        string `json:"order_id" gorm:"index;type:varchar(36)"`
	VariantID      string `json:"variant_id" gorm:"index;type:varchar(36)"`
	WarehouseID    string `json:"warehouse_id" gorm:"type:varchar(36)"`
	Quantity       int    `json:"quantity"`
	OriginalPrice  int64  `json:"original_price"`
	DiscountAmount int64  `json:"discount_amount"`
	UnitPrice      int64  `json:"unit_price"` // max(0, OriginalPrice - DiscountAmount)
	Subtotal       int64  `json:"subtotal"`   // UnitPrice * Quantity
	Snapshot       string `json:"product_snapshot" gorm:"type:text"`
	gorm.Model
}

// ProductSnapshot is the frozen variant data embedded in an OrderItem so that
// later catalog edits or deletions cannot corrupt order history.
type ProductSnapshot struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Attributes string `json:"attributes,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

// SnapshotVariant freezes a variant into the JSON stored on an OrderItem.
func SnapshotVariant(v *ProductVariant) (string, error) {
	b, err := json.Marshal(ProductSnapshot{
		Name:       v.Name,
		SKU:        v.SKU,
		Attributes: v.Attributes,
		ImageURL:   v.ImageURL,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
