package normalize_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/autoledger-in/tallybridge/internal/normalize"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "ACME Corp", normalize.SanitizeName("  ACME @#Corp  "))
	assert.Equal(t, "Sharma and Sons (Pvt.)", normalize.SanitizeName("Sharma & Sons (Pvt.)"))
	assert.Equal(t, "Steel Rods 12mm - 8.5%", normalize.SanitizeName("Steel Rods 12mm - 8.5%"))
}

func TestSanitizeNameCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "A B C", normalize.SanitizeName("A\t B \n C"))
}

func TestSanitizeNameFallback(t *testing.T) {
	assert.Equal(t, normalize.FallbackName, normalize.SanitizeName(""))
	assert.Equal(t, normalize.FallbackName, normalize.SanitizeName("@#$!"))
	assert.Equal(t, normalize.FallbackName, normalize.SanitizeName("   "))
}

func TestSanitizeNameTruncates(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := normalize.SanitizeName(long)
	assert.Len(t, got, normalize.MaxLedgerNameLength)
}

func TestFormatWireDateDayFirst(t *testing.T) {
	for _, in := range []string{"15-04-2024", "15/04/2024", "15.04.2024", "15 04 2024", "15-4-2024", "5-4-2024"} {
		got, ok := normalize.FormatWireDate(in)
		assert.True(t, ok, in)
		if in == "5-4-2024" {
			assert.Equal(t, "20240405", got)
		} else {
			assert.Equal(t, "20240415", got, in)
		}
	}
}

func TestFormatWireDateISO(t *testing.T) {
	got, ok := normalize.FormatWireDate("2024-04-15")
	assert.True(t, ok)
	assert.Equal(t, "20240415", got)
}

func TestFormatWireDateFallback(t *testing.T) {
	got, ok := normalize.FormatWireDate("not a date")
	assert.False(t, ok)
	assert.Equal(t, time.Now().Format("20060102"), got)
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "18", normalize.FormatRate(decimal.NewFromInt(18)))
	assert.Equal(t, "2.5", normalize.FormatRate(decimal.RequireFromString("2.5")))
	assert.Equal(t, "9", normalize.FormatRate(decimal.RequireFromString("9.0")))
}
