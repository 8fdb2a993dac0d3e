package catalog

import "errors"

// ErrFull is returned when every slot already holds an item.
var ErrFull = errors.New("catalog has no free slot")

// ErrNotFound is returned when no active slot carries the requested item.
var ErrNotFound = errors.New("catalog item not found")

// ErrSlotEmpty is returned when an operation targets a slot without an item.
var ErrSlotEmpty = errors.New("catalog slot is empty")

// ErrOutOfStock is returned when a sale is attempted against a depleted slot.
var ErrOutOfStock = errors.New("catalog item is out of stock")

// invalidArgumentError communicates rule violations back to callers.
type invalidArgumentError struct {
	message string
}

func (e invalidArgumentError) Error() string { return e.message }

// newInvalidArgument keeps the constructor private to the package.
func newInvalidArgument(msg string) error {
	return invalidArgumentError{message: msg}
}

// IsInvalidArgument helps callers distinguish bad input from state conflicts.
func IsInvalidArgument(err error) bool {
	var v invalidArgumentError
	return errors.As(err, &v)
}
