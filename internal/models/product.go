package models

import "gorm.io/gorm"

// Product groups purchasable variants and carries the promotion links.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string           `json:"name" validate:"required,min=3,max=100"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	Promotions  []Promotion      `json:"promotions,omitempty" gorm:"many2many:product_promotions;"`
	gorm.Model  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductVariant is the purchasable SKU. Price is in integer minor-currency units.
type ProductVariant struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID  string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name       string `json:"name" validate:"required,min=1,max=100"`
	SKU        string `json:"sku" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	Price      int64  `json:"price" validate:"required,gt=0"`
	Attributes string `json:"attributes" gorm:"type:text"` // JSON object, e.g. {"color":"red","size":"M"}
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
	gorm.Model
}

// Warehouse is a physical stock-holding location.
type Warehouse struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code string `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required"`
	Name string `json:"name" validate:"required,min=3,max=100"`
	gorm.Model
}
