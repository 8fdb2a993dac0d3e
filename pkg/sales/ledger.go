package sales

import "fmt"

// Summary is the read model handed to the reporting surfaces.
type Summary struct {
	TotalRevenue int            `json:"total_revenue"`
	UnitsSold    map[string]int `json:"units_sold"`
}

// Ledger accumulates revenue and per-item units sold from committed purchases.
// Counts are tracked explicitly rather than derived from stock levels, so the
// figures stay correct after restocking.
// It is not safe for concurrent use; the vending machine serializes access to it.
type Ledger struct {
	totalRevenue int
	unitsSold    map[int]int
	itemNames    map[int]string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		unitsSold: make(map[int]int),
		itemNames: make(map[int]string),
	}
}

// RecordSale adds one committed sale: amount joins total revenue and the
// slot's sold counter goes up by one unit.
func (l *Ledger) RecordSale(slotID int, itemName string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("sale amount must not be negative, got %d", amount)
	}
	l.totalRevenue += amount
	l.unitsSold[slotID]++
	l.itemNames[slotID] = itemName
	return nil
}

// TotalRevenue reports the cumulative value of committed sales.
func (l *Ledger) TotalRevenue() int {
	return l.totalRevenue
}

// Summary projects the ledger into per-item figures keyed by item name.
func (l *Ledger) Summary() Summary {
	units := make(map[string]int, len(l.unitsSold))
	for slotID, count := range l.unitsSold {
		units[l.itemNames[slotID]] += count
	}
	return Summary{
		TotalRevenue: l.totalRevenue,
		UnitsSold:    units,
	}
}
