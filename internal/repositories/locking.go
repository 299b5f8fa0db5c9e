package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate applies a pessimistic row lock scoped to the caller's
// transaction. sqlite has no FOR UPDATE syntax; its single-writer database
// lock already serializes concurrent transactions there.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
