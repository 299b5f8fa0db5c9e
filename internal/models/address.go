package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Address is a user-owned shipping address. Orders never reference it by id
// after creation; they carry an immutable JSON snapshot instead.
type Address struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Recipient  string `json:"recipient" validate:"required,min=2,max=100"`
	Phone      string `json:"phone" validate:"required,min=6,max=20"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	gorm.Model
}

// Snapshot serializes the address fields that matter for shipping into the
// JSON stored on an Order.
func (a *Address) Snapshot() (string, error) {
	b, err := json.Marshal(map[string]string{
		"recipient":   a.Recipient,
		"phone":       a.Phone,
		"street":      a.Street,
		"city":        a.City,
		"province":    a.Province,
		"postal_code": a.PostalCode,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
