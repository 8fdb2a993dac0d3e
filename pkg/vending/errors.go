package vending

import "errors"

// ErrInvalidSlot is returned when a purchase targets a slot id that is out of
// range or holds no item.
var ErrInvalidSlot = errors.New("selected slot does not hold an item")

// ErrInsufficientPayment is returned when the payment does not cover the price.
var ErrInsufficientPayment = errors.New("payment does not cover the item price")

// ErrClosed is returned when an operation reaches a machine that has shut down.
var ErrClosed = errors.New("vending machine is closed")
