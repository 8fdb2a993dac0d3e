package cash

import "errors"

// ErrChangeInfeasible is returned when the requested amount cannot be assembled
// from the notes currently in the ledger, so callers can abort before mutating anything.
var ErrChangeInfeasible = errors.New("change cannot be produced from available denominations")
