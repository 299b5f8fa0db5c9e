package models

import (
	"errors"
	"fmt"
)

// Domain errors raised by the fulfillment core. Everything is surfaced
// synchronously inside the active transaction; any of these aborts and rolls
// back the whole operation.
var (
	// ErrNotFound covers missing referenced entities (order, variant, stock row).
	ErrNotFound = errors.New("not found")

	// ErrValidation covers bad or missing caller input (unknown address, empty items).
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientStock means no single warehouse holds the requested
	// quantity. Line items are always fulfilled from exactly one warehouse.
	ErrInsufficientStock = errors.New("insufficient stock in any single warehouse")

	// ErrInvalidTransition means the requested order status change is not a
	// legal successor of the current status.
	ErrInvalidTransition = errors.New("illegal order status transition")
)

// VoucherFailReason classifies why a voucher could not be applied.
type VoucherFailReason string

const (
	VoucherNotFound     VoucherFailReason = "not_found"
	VoucherInactive     VoucherFailReason = "expired_or_inactive"
	VoucherExhausted    VoucherFailReason = "quantity_exhausted"
	VoucherBelowMinimum VoucherFailReason = "below_minimum"
	VoucherUserLimit    VoucherFailReason = "user_limit_reached"
)

// VoucherError is returned by the voucher ledger with the specific reason the
// code was rejected, so handlers can map reasons to responses without string
// matching.
type VoucherError struct {
	Code   string
	Reason VoucherFailReason
}

func (e *VoucherError) Error() string {
	return fmt.Sprintf("voucher %q rejected: %s", e.Code, e.Reason)
}

// NewVoucherError builds a VoucherError for the given code and reason.
func NewVoucherError(code string, reason VoucherFailReason) *VoucherError {
	return &VoucherError{Code: code, Reason: reason}
}
