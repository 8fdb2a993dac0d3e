// Package menu drives the machine from a terminal, for bench testing and
// kiosk-style deployments without the HTTP surface.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"dispenser/pkg/vending"
)

// Menu reads operator and customer choices line by line and calls into the machine.
type Menu struct {
	machine *vending.Machine
	in      *bufio.Scanner
	out     io.Writer
}

// New wires the machine to a line-oriented input and an output writer.
func New(machine *vending.Machine, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		machine: machine,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loops over the main menu until the operator exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "Vending Machine Menu:")
		fmt.Fprintln(m.out, "1. Add New Item")
		fmt.Fprintln(m.out, "2. Restock Item")
		fmt.Fprintln(m.out, "3. Set Item Price")
		fmt.Fprintln(m.out, "4. Start Transaction")
		fmt.Fprintln(m.out, "5. Display Items")
		fmt.Fprintln(m.out, "6. Print Sales Summary")
		fmt.Fprintln(m.out, "7. Exit")

		choice, ok := m.promptInt("Enter your choice:")
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch choice {
		case 1:
			m.addItem(ctx)
		case 2:
			m.restockItem(ctx)
		case 3:
			m.setPrice(ctx)
		case 4:
			m.startTransaction(ctx)
		case 5:
			m.displayItems(ctx)
		case 6:
			m.printSummary(ctx)
		case 7:
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice!")
		}
	}
}

// addItem collects the item definition and stores it in the lowest free slot.
func (m *Menu) addItem(ctx context.Context) {
	name, ok := m.promptLine("Name:")
	if !ok {
		return
	}
	price, ok := m.promptInt("Price:")
	if !ok {
		return
	}
	calories, ok := m.promptInt("Calories:")
	if !ok {
		return
	}
	quantity, ok := m.promptInt("Initial Quantity:")
	if !ok {
		return
	}
	slot, err := m.machine.AddItem(ctx, name, price, calories, quantity)
	if err != nil {
		fmt.Fprintf(m.out, "Cannot add item: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Item %s added to slot %d.\n", name, slot+1)
}

// restockItem tops up one item by name.
func (m *Menu) restockItem(ctx context.Context) {
	name, ok := m.promptLine("Enter item name to restock:")
	if !ok {
		return
	}
	quantity, ok := m.promptInt("Enter quantity to restock:")
	if !ok {
		return
	}
	if err := m.machine.RestockItem(ctx, name, quantity); err != nil {
		fmt.Fprintf(m.out, "Cannot restock: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Item restocked.")
}

// setPrice changes the price for one item by name.
func (m *Menu) setPrice(ctx context.Context) {
	name, ok := m.promptLine("Enter item name to set price:")
	if !ok {
		return
	}
	price, ok := m.promptInt("Enter new price:")
	if !ok {
		return
	}
	if err := m.machine.SetPrice(ctx, name, price); err != nil {
		fmt.Fprintf(m.out, "Cannot set price: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Price updated.")
}

// startTransaction offers the catalog and runs either a purchase or a
// standalone change request when the customer enters 0.
func (m *Menu) startTransaction(ctx context.Context) {
	fmt.Fprintln(m.out, "Please select an item or enter 0 for change:")
	m.displayItems(ctx)

	choice, ok := m.promptInt("")
	if !ok {
		return
	}
	if choice == 0 {
		m.produceChange(ctx)
		return
	}

	payment, ok := m.promptInt("Enter payment amount:")
	if !ok {
		return
	}
	// Slots display 1-based, the engine counts from 0.
	receipt, err := m.machine.Purchase(ctx, choice-1, payment)
	if err != nil {
		fmt.Fprintf(m.out, "Transaction failed (%s): %v\n", vending.StatusOf(err), err)
		return
	}
	m.printBreakdown(receipt.Change)
	fmt.Fprintf(m.out, "Transaction successful! Enjoy your %s\n", receipt.ItemName)
}

// produceChange serves a change-only request without touching stock or sales.
func (m *Menu) produceChange(ctx context.Context) {
	amount, ok := m.promptInt("Enter change amount:")
	if !ok {
		return
	}
	breakdown, err := m.machine.DispenseChange(ctx, amount)
	if err != nil {
		fmt.Fprintf(m.out, "Sorry, not enough change available: %v\n", err)
		return
	}
	m.printBreakdown(breakdown)
	fmt.Fprintln(m.out, "Change produced.")
}

// displayItems renders the catalog table with 1-based slot numbers.
func (m *Menu) displayItems(ctx context.Context) {
	listings, err := m.machine.ListItems(ctx)
	if err != nil {
		fmt.Fprintf(m.out, "Cannot list items: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Available items:")
	fmt.Fprintln(m.out, "------------------------------")
	fmt.Fprintf(m.out, "%-10s %-10s %-10s %-10s\n", "Slot", "Item", "Stock", "Price")
	fmt.Fprintln(m.out, "------------------------------")
	for _, listing := range listings {
		fmt.Fprintf(m.out, "%-10d %-10s %-10d %-10d\n", listing.Slot+1, listing.Name, listing.Stock, listing.Price)
	}
	fmt.Fprintln(m.out)
}

// printSummary renders total revenue and per-item units sold.
func (m *Menu) printSummary(ctx context.Context) {
	summary, err := m.machine.SalesSummary(ctx)
	if err != nil {
		fmt.Fprintf(m.out, "Cannot produce summary: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Transaction Summary:")
	fmt.Fprintf(m.out, "Total Sales: %d\n", summary.TotalRevenue)
	fmt.Fprintln(m.out, "Item Quantity:")
	names := make([]string, 0, len(summary.UnitsSold))
	for name := range summary.UnitsSold {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(m.out, "%s: %d\n", name, summary.UnitsSold[name])
	}
	fmt.Fprintln(m.out)
}

// printBreakdown lists dispensed notes, highest denomination first.
func (m *Menu) printBreakdown(breakdown map[int]int) {
	values := make([]int, 0, len(breakdown))
	for value := range breakdown {
		values = append(values, value)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	for _, value := range values {
		fmt.Fprintf(m.out, "Dispensing %d notes of %d denomination.\n", breakdown[value], value)
	}
}

// promptLine reads one trimmed line; ok is false once input ends.
func (m *Menu) promptLine(label string) (string, bool) {
	if label != "" {
		fmt.Fprintln(m.out, label)
	}
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptInt keeps asking until it reads an integer or input ends.
func (m *Menu) promptInt(label string) (int, bool) {
	for {
		line, ok := m.promptLine(label)
		if !ok {
			return 0, false
		}
		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a number.")
			continue
		}
		return value, true
	}
}
