package vending

import (
	"errors"
	"time"

	"dispenser/pkg/cash"
	"dispenser/pkg/catalog"
)

// Status tracks the outcome of a single purchase attempt. A transaction only
// lives for the duration of one Purchase call and is never stored.
type Status int

const (
	StatusPending Status = iota
	StatusCommitted
	StatusRejectedInvalidSlot
	StatusRejectedOutOfStock
	StatusRejectedInsufficientPayment
	StatusRejectedNoChange
)

// String renders the status for logs and display layers.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCommitted:
		return "committed"
	case StatusRejectedInvalidSlot:
		return "rejected: invalid slot"
	case StatusRejectedOutOfStock:
		return "rejected: out of stock"
	case StatusRejectedInsufficientPayment:
		return "rejected: insufficient payment"
	case StatusRejectedNoChange:
		return "rejected: cannot make change"
	default:
		return "unknown"
	}
}

// StatusOf classifies a purchase error into the matching rejection status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusCommitted
	case errors.Is(err, ErrInvalidSlot), errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrSlotEmpty):
		return StatusRejectedInvalidSlot
	case errors.Is(err, catalog.ErrOutOfStock):
		return StatusRejectedOutOfStock
	case errors.Is(err, ErrInsufficientPayment):
		return StatusRejectedInsufficientPayment
	case errors.Is(err, cash.ErrChangeInfeasible):
		return StatusRejectedNoChange
	default:
		return StatusPending
	}
}

// Receipt is the result of a committed purchase, including the exact notes dispensed.
type Receipt struct {
	ID         string         `json:"id"`
	Slot       int            `json:"slot"`
	ItemName   string         `json:"item_name"`
	UnitPrice  int            `json:"unit_price"`
	AmountPaid int            `json:"amount_paid"`
	ChangeDue  int            `json:"change_due"`
	Change     cash.Breakdown `json:"change"`
	Status     Status         `json:"status"`
	IssuedAt   time.Time      `json:"issued_at"`
}
