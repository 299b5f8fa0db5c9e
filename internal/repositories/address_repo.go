package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"gorm.io/gorm"
)

// AddressRepository resolves shipping addresses for checkout. Resolution is
// ownership-checked: an address only resolves for the user it belongs to.
// Resolve takes the checkout transaction (nil for a standalone read).
type AddressRepository interface {
	Resolve(tx *gorm.DB, addressID, userID string) (*models.Address, error)
	Create(address *models.Address) error
}

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// Resolve retrieves an address only if it belongs to the given user.
func (r *GORMAddressRepository) Resolve(tx *gorm.DB, addressID, userID string) (*models.Address, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var address models.Address
	if err := db.First(&address, "id = ? AND user_id = ?", addressID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address %s for user %s: %w", addressID, userID, models.ErrValidation)
		}
		return nil, fmt.Errorf("failed to resolve address %s: %w", addressID, err)
	}
	return &address, nil
}

// Create stores a new address for a user.
func (r *GORMAddressRepository) Create(address *models.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}
