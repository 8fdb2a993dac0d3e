package vending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dispenser/pkg/cash"
	"dispenser/pkg/catalog"
	"dispenser/pkg/sales"
)

// Config describes the physical build of one machine.
type Config struct {
	SlotCount     int
	MaxPerSlot    int
	Denominations []int
	FloatPerNote  int
}

// DefaultConfig mirrors the machines this engine was written for: ten slots of
// ten units each and a float of ten notes per denomination.
func DefaultConfig() Config {
	return Config{
		SlotCount:     catalog.DefaultCapacity,
		MaxPerSlot:    catalog.DefaultMaxPerSlot,
		Denominations: []int{1, 5, 10, 20, 50, 100},
		FloatPerNote:  10,
	}
}

// command envelopes the work the machine goroutine must perform.
type command struct {
	action   string
	slot     int
	name     string
	price    int
	calories int
	quantity int
	payment  int
	amount   int
	reply    chan result
}

// result transfers whichever fields the action produced back to the caller.
type result struct {
	slot      int
	placed    int
	receipt   Receipt
	breakdown cash.Breakdown
	listings  []catalog.Listing
	counts    []cash.Denomination
	summary   sales.Summary
	err       error
}

// Machine orchestrates purchases over one goroutine so the feasibility check
// and the withdrawal are always observed atomically; no caller ever sees a
// partially applied transaction.
type Machine struct {
	store    *catalog.Store
	ledger   *cash.Ledger
	sales    *sales.Ledger
	commands chan command
	quit     chan struct{}
}

// NewMachine assembles the store, cash ledger, and sales ledger, then starts
// the coordinating goroutine so callers only ever see non-blocking operations.
func NewMachine(cfg Config) (*Machine, error) {
	if len(cfg.Denominations) == 0 {
		cfg = DefaultConfig()
	}
	ledger, err := cash.NewLedger(cfg.Denominations, cfg.FloatPerNote)
	if err != nil {
		return nil, fmt.Errorf("unable to build cash ledger: %w", err)
	}
	m := &Machine{
		store:    catalog.NewStore(cfg.SlotCount, cfg.MaxPerSlot),
		ledger:   ledger,
		sales:    sales.NewLedger(),
		commands: make(chan command),
		quit:     make(chan struct{}),
	}
	go m.loop()
	return m, nil
}

// loop processes commands sequentially so the store and the two ledgers
// mutate under a single exclusion scope without mutexes.
func (m *Machine) loop() {
	for {
		select {
		case cmd := <-m.commands:
			switch cmd.action {
			case "purchase":
				receipt, err := m.purchase(cmd.slot, cmd.payment)
				cmd.reply <- result{receipt: receipt, err: err}
			case "dispenseChange":
				breakdown, err := m.dispenseChange(cmd.amount)
				cmd.reply <- result{breakdown: breakdown, err: err}
			case "addItem":
				slot, err := m.store.AddItem(cmd.name, cmd.price, cmd.calories, cmd.quantity)
				cmd.reply <- result{slot: slot, err: err}
			case "restockItem":
				cmd.reply <- result{err: m.restockItem(cmd.name, cmd.quantity)}
			case "restockAll":
				placed, err := m.store.RestockAll(cmd.quantity, 0)
				cmd.reply <- result{placed: placed, err: err}
			case "setPrice":
				cmd.reply <- result{err: m.setPrice(cmd.name, cmd.price)}
			case "listItems":
				cmd.reply <- result{listings: m.store.List()}
			case "cashCounts":
				cmd.reply <- result{counts: m.ledger.Counts()}
			case "salesSummary":
				cmd.reply <- result{summary: m.sales.Summary()}
			default:
				cmd.reply <- result{err: fmt.Errorf("unknown machine action %s", cmd.action)}
			}
		case <-m.quit:
			return
		}
	}
}

// purchase validates the selection and payment, checks change feasibility, and
// only then commits stock, cash, and sales mutations. Every failure path
// leaves all three exactly as they were before the call.
func (m *Machine) purchase(slotID, payment int) (Receipt, error) {
	slot, err := m.store.Slot(slotID)
	if err != nil || !slot.Occupied() {
		return Receipt{}, ErrInvalidSlot
	}
	if slot.Stock == 0 {
		return Receipt{}, catalog.ErrOutOfStock
	}
	if payment < slot.Price {
		return Receipt{}, ErrInsufficientPayment
	}
	changeDue := payment - slot.Price
	if !m.ledger.CanMake(changeDue) {
		return Receipt{}, cash.ErrChangeInfeasible
	}
	breakdown, err := m.ledger.Withdraw(changeDue)
	if err != nil {
		// CanMake and Withdraw share one arithmetic pass, so this cannot
		// happen while the loop owns the ledger.
		return Receipt{}, fmt.Errorf("withdraw disagreed with feasibility check: %w", err)
	}
	if err := m.store.DecrementStock(slotID); err != nil {
		return Receipt{}, fmt.Errorf("stock decrement failed after withdrawal: %w", err)
	}
	if err := m.sales.RecordSale(slotID, slot.Item.Name, slot.Price); err != nil {
		return Receipt{}, fmt.Errorf("unable to record sale: %w", err)
	}
	return Receipt{
		ID:         uuid.NewString(),
		Slot:       slotID,
		ItemName:   slot.Item.Name,
		UnitPrice:  slot.Price,
		AmountPaid: payment,
		ChangeDue:  changeDue,
		Change:     breakdown,
		Status:     StatusCommitted,
		IssuedAt:   time.Now().UTC(),
	}, nil
}

// dispenseChange serves a standalone change request; stock and sales stay untouched.
func (m *Machine) dispenseChange(amount int) (cash.Breakdown, error) {
	if amount < 0 {
		return nil, fmt.Errorf("change amount must not be negative, got %d", amount)
	}
	if !m.ledger.CanMake(amount) {
		return nil, cash.ErrChangeInfeasible
	}
	return m.ledger.Withdraw(amount)
}

// restockItem resolves the legacy per-item restock form used by operators.
func (m *Machine) restockItem(name string, quantity int) error {
	slotID, err := m.store.FindByName(name)
	if err != nil {
		return err
	}
	return m.store.Restock(slotID, quantity)
}

// setPrice resolves an item by name before delegating to the store.
func (m *Machine) setPrice(name string, price int) error {
	slotID, err := m.store.FindByName(name)
	if err != nil {
		return err
	}
	return m.store.SetPrice(slotID, price)
}

// send forwards a command to the loop while honoring the caller's context.
func (m *Machine) send(ctx context.Context, cmd command) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, err
	}

	select {
	case m.commands <- cmd:
	case <-m.quit:
		return result{}, ErrClosed
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-time.After(2 * time.Second):
		return result{}, errors.New("machine is busy with another transaction")
	}

	select {
	case res := <-cmd.reply:
		return res, nil
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-time.After(2 * time.Second):
		return result{}, errors.New("machine operation took too long")
	}
}

// Purchase runs one complete transaction for the slot and returns the receipt.
func (m *Machine) Purchase(ctx context.Context, slotID, payment int) (Receipt, error) {
	res, err := m.send(ctx, command{action: "purchase", slot: slotID, payment: payment, reply: make(chan result)})
	if err != nil {
		return Receipt{}, err
	}
	return res.receipt, res.err
}

// DispenseChange assembles the requested amount from the cash ledger without a purchase.
func (m *Machine) DispenseChange(ctx context.Context, amount int) (cash.Breakdown, error) {
	res, err := m.send(ctx, command{action: "dispenseChange", amount: amount, reply: make(chan result)})
	if err != nil {
		return nil, err
	}
	return res.breakdown, res.err
}

// AddItem registers a new product in the lowest free slot.
func (m *Machine) AddItem(ctx context.Context, name string, price, calories, quantity int) (int, error) {
	res, err := m.send(ctx, command{action: "addItem", name: name, price: price, calories: calories, quantity: quantity, reply: make(chan result)})
	if err != nil {
		return 0, err
	}
	return res.slot, res.err
}

// RestockItem tops up one item by name.
func (m *Machine) RestockItem(ctx context.Context, name string, quantity int) error {
	res, err := m.send(ctx, command{action: "restockItem", name: name, quantity: quantity, reply: make(chan result)})
	if err != nil {
		return err
	}
	return res.err
}

// RestockAll spreads a unit budget across every occupied slot and reports how
// many units were actually placed.
func (m *Machine) RestockAll(ctx context.Context, totalUnits int) (int, error) {
	res, err := m.send(ctx, command{action: "restockAll", quantity: totalUnits, reply: make(chan result)})
	if err != nil {
		return 0, err
	}
	return res.placed, res.err
}

// SetPrice changes the unit price for an item by name.
func (m *Machine) SetPrice(ctx context.Context, name string, price int) error {
	res, err := m.send(ctx, command{action: "setPrice", name: name, price: price, reply: make(chan result)})
	if err != nil {
		return err
	}
	return res.err
}

// ListItems returns the occupied slots in display order.
func (m *Machine) ListItems(ctx context.Context) ([]catalog.Listing, error) {
	res, err := m.send(ctx, command{action: "listItems", reply: make(chan result)})
	if err != nil {
		return nil, err
	}
	return res.listings, res.err
}

// CashCounts reports the current change inventory for operator displays.
func (m *Machine) CashCounts(ctx context.Context) ([]cash.Denomination, error) {
	res, err := m.send(ctx, command{action: "cashCounts", reply: make(chan result)})
	if err != nil {
		return nil, err
	}
	return res.counts, res.err
}

// SalesSummary reports total revenue and per-item units sold.
func (m *Machine) SalesSummary(ctx context.Context) (sales.Summary, error) {
	res, err := m.send(ctx, command{action: "salesSummary", reply: make(chan result)})
	if err != nil {
		return sales.Summary{}, err
	}
	return res.summary, res.err
}

// Close stops the coordinating goroutine when the application shuts down.
func (m *Machine) Close() {
	close(m.quit)
}
