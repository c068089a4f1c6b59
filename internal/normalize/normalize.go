// Package normalize sanitizes free-text values coming out of OCR and
// spreadsheet extraction into the restricted character set and formats the
// Tally import protocol accepts.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxLedgerNameLength is the longest ledger name we will send to Tally.
const MaxLedgerNameLength = 80

// FallbackName is substituted when sanitization leaves nothing usable.
const FallbackName = "Unknown Item"

var (
	disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-.()%]`)
	multiWhitespace = regexp.MustCompile(`\s+`)
	dateSeparators  = regexp.MustCompile(`[./\s]`)
	isoDate         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayFirstDate    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// SanitizeName strips characters Tally rejects in ledger names, collapses
// whitespace and truncates to MaxLedgerNameLength. It never fails: empty or
// fully-stripped input yields FallbackName.
func SanitizeName(raw string) string {
	cleaned := disallowedChars.ReplaceAllString(raw, "")
	cleaned = multiWhitespace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return FallbackName
	}
	if len(cleaned) > MaxLedgerNameLength {
		cleaned = strings.TrimSpace(cleaned[:MaxLedgerNameLength])
	}
	return cleaned
}

// FormatWireDate converts DD-MM-YYYY or YYYY-MM-DD (with '.', '/' or space
// separators tolerated) into Tally's YYYYMMDD form. Unparseable input falls
// back to today's date; the second return value is false when that fallback
// fired so callers can report the defaulted field.
func FormatWireDate(dateStr string) (string, bool) {
	d := dateSeparators.ReplaceAllString(strings.TrimSpace(dateStr), "-")
	if isoDate.MatchString(d) {
		return strings.ReplaceAll(d, "-", ""), true
	}
	if m := dayFirstDate.FindStringSubmatch(d); m != nil {
		day, month, year := m[1], m[2], m[3]
		if len(day) == 1 {
			day = "0" + day
		}
		if len(month) == 1 {
			month = "0" + month
		}
		return year + month + day, true
	}
	return time.Now().Format("20060102"), false
}

// FormatRate renders a tax rate without a trailing ".0" (9 not 9.0, but 2.5
// stays 2.5). Ledger names embed this so the format must be stable.
func FormatRate(rate decimal.Decimal) string {
	return rate.String()
}
