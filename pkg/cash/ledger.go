package cash

import (
	"fmt"
	"sort"
)

// Denomination pairs a note value with the number of such notes held by the machine.
type Denomination struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// Breakdown maps a denomination value to the number of notes dispensed for it.
type Breakdown map[int]int

// Amount sums the monetary value represented by the breakdown.
func (b Breakdown) Amount() int {
	total := 0
	for value, count := range b {
		total += value * count
	}
	return total
}

// Ledger tracks the physical change inventory, ordered ascending by value.
// It is not safe for concurrent use; the vending machine serializes access to it.
type Ledger struct {
	denominations []Denomination
}

// NewLedger builds a ledger over the given note values, each starting with the same count.
// Values are deduplicated and kept sorted ascending so the greedy pass can walk them backwards.
func NewLedger(values []int, countEach int) (*Ledger, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one denomination is required")
	}
	if countEach < 0 {
		return nil, fmt.Errorf("denomination count must not be negative, got %d", countEach)
	}
	seen := make(map[int]bool, len(values))
	denominations := make([]Denomination, 0, len(values))
	for _, value := range values {
		if value <= 0 {
			return nil, fmt.Errorf("denomination value must be positive, got %d", value)
		}
		if seen[value] {
			continue
		}
		seen[value] = true
		denominations = append(denominations, Denomination{Value: value, Count: countEach})
	}
	sort.Slice(denominations, func(i, j int) bool {
		return denominations[i].Value < denominations[j].Value
	})
	return &Ledger{denominations: denominations}, nil
}

// greedyPass walks denominations from highest to lowest, taking as many notes of each
// as the remaining amount and the available count allow. It is a single deterministic
// pass without backtracking, so it can reject amounts a smarter combination could
// satisfy; that limitation is intentional and both CanMake and Withdraw share it.
func (l *Ledger) greedyPass(amount int) (Breakdown, int) {
	breakdown := make(Breakdown)
	remaining := amount
	for i := len(l.denominations) - 1; i >= 0; i-- {
		d := l.denominations[i]
		notes := remaining / d.Value
		if notes > d.Count {
			notes = d.Count
		}
		if notes > 0 {
			breakdown[d.Value] = notes
			remaining -= notes * d.Value
		}
	}
	return breakdown, remaining
}

// CanMake reports whether amount can be assembled from the current inventory
// under the greedy-descending policy. It never mutates the ledger.
func (l *Ledger) CanMake(amount int) bool {
	if amount < 0 {
		return false
	}
	_, remaining := l.greedyPass(amount)
	return remaining == 0
}

// Withdraw runs the same greedy pass as CanMake and, only when the residual is
// exactly zero, removes the chosen notes and returns the per-denomination breakdown.
// On ErrChangeInfeasible the ledger is left untouched.
func (l *Ledger) Withdraw(amount int) (Breakdown, error) {
	if amount < 0 {
		return nil, fmt.Errorf("withdraw amount must not be negative, got %d", amount)
	}
	breakdown, remaining := l.greedyPass(amount)
	if remaining != 0 {
		return nil, ErrChangeInfeasible
	}
	for i := range l.denominations {
		if notes, ok := breakdown[l.denominations[i].Value]; ok {
			l.denominations[i].Count -= notes
		}
	}
	return breakdown, nil
}

// Refill tops up the count for a known denomination value, as happens when an
// operator loads the float. Unknown values are rejected so typos do not grow the note set.
func (l *Ledger) Refill(value, count int) error {
	if count < 0 {
		return fmt.Errorf("refill count must not be negative, got %d", count)
	}
	for i := range l.denominations {
		if l.denominations[i].Value == value {
			l.denominations[i].Count += count
			return nil
		}
	}
	return fmt.Errorf("unknown denomination value %d", value)
}

// Counts returns a copy of the inventory so callers cannot mutate internal state.
func (l *Ledger) Counts() []Denomination {
	out := make([]Denomination, len(l.denominations))
	copy(out, l.denominations)
	return out
}

// Total reports the monetary value currently sitting in the ledger.
func (l *Ledger) Total() int {
	total := 0
	for _, d := range l.denominations {
		total += d.Value * d.Count
	}
	return total
}
