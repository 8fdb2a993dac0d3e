package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSaleAccumulates(t *testing.T) {
	ledger := NewLedger()

	require.NoError(t, ledger.RecordSale(0, "cola", 105))
	require.NoError(t, ledger.RecordSale(0, "cola", 105))
	require.NoError(t, ledger.RecordSale(1, "chips", 75))

	assert.Equal(t, 285, ledger.TotalRevenue())

	summary := ledger.Summary()
	assert.Equal(t, 285, summary.TotalRevenue)
	assert.Equal(t, map[string]int{"cola": 2, "chips": 1}, summary.UnitsSold)
}

func TestRecordSaleRejectsNegativeAmount(t *testing.T) {
	ledger := NewLedger()
	assert.Error(t, ledger.RecordSale(0, "cola", -1))
	assert.Equal(t, 0, ledger.TotalRevenue())
}

// Units sold are explicit counters, so the figures survive restocking; the
// count only ever moves when a sale is recorded.
func TestSummaryIndependentOfStockLevels(t *testing.T) {
	ledger := NewLedger()

	require.NoError(t, ledger.RecordSale(0, "cola", 105))
	first := ledger.Summary()
	second := ledger.Summary()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, second.UnitsSold["cola"])
}

func TestEmptySummary(t *testing.T) {
	summary := NewLedger().Summary()
	assert.Equal(t, 0, summary.TotalRevenue)
	assert.Empty(t, summary.UnitsSold)
}
