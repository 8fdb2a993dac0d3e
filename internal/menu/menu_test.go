package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispenser/pkg/vending"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	machine, err := vending.NewMachine(vending.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(machine.Close)

	var out bytes.Buffer
	m := New(machine, strings.NewReader(script), &out)
	require.NoError(t, m.Run(context.Background()))
	return out.String()
}

func TestAddDisplayAndPurchase(t *testing.T) {
	script := strings.Join([]string{
		"1",    // add new item
		"Cola", // name
		"105",  // price
		"140",  // calories
		"10",   // initial quantity
		"5",    // display items
		"4",    // start transaction
		"1",    // slot 1 (displayed 1-based)
		"110",  // payment
		"6",    // summary
		"7",    // exit
	}, "\n") + "\n"

	out := runScript(t, script)

	assert.Contains(t, out, "Item Cola added to slot 1.")
	assert.Contains(t, out, "Cola")
	assert.Contains(t, out, "Dispensing 1 notes of 5 denomination.")
	assert.Contains(t, out, "Transaction successful! Enjoy your Cola")
	assert.Contains(t, out, "Total Sales: 105")
	assert.Contains(t, out, "Cola: 1")
}

func TestChangeOnlyRequest(t *testing.T) {
	script := strings.Join([]string{
		"4",  // start transaction
		"0",  // request change instead of an item
		"37", // change amount
		"7",  // exit
	}, "\n") + "\n"

	out := runScript(t, script)

	assert.Contains(t, out, "Dispensing 1 notes of 20 denomination.")
	assert.Contains(t, out, "Dispensing 1 notes of 10 denomination.")
	assert.Contains(t, out, "Dispensing 1 notes of 5 denomination.")
	assert.Contains(t, out, "Dispensing 2 notes of 1 denomination.")
	assert.Contains(t, out, "Change produced.")
}

func TestInvalidChoiceAndRecovery(t *testing.T) {
	script := strings.Join([]string{
		"9",   // not a menu entry
		"abc", // not a number
		"7",   // exit
	}, "\n") + "\n"

	out := runScript(t, script)

	assert.Contains(t, out, "Invalid choice!")
	assert.Contains(t, out, "Please enter a number.")
}

func TestFailedPurchaseReportsStatus(t *testing.T) {
	script := strings.Join([]string{
		"4",  // start transaction
		"3",  // empty slot
		"50", // payment
		"7",  // exit
	}, "\n") + "\n"

	out := runScript(t, script)

	assert.Contains(t, out, "Transaction failed")
	assert.Contains(t, out, "invalid slot")
}

func TestRunStopsWhenInputEnds(t *testing.T) {
	out := runScript(t, "5\n")
	assert.Contains(t, out, "Available items:")
}
