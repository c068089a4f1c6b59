// Package gst decides the tax topology of a document: whether a line is
// taxed with a single integrated levy (interstate) or split into two
// half-rate levies (intrastate, CGST + SGST), and which jurisdiction name a
// registration identifier maps to.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

// Regime is the tax topology applied to a line or document.
type Regime string

const (
	// Interstate emits one consolidated IGST ledger at the full rate.
	Interstate Regime = "INTERSTATE"
	// Intrastate emits CGST and SGST ledgers at half the rate each.
	Intrastate Regime = "INTRASTATE"
)

// GSTINLength is the fixed length of a valid registration identifier.
const GSTINLength = 15

var two = decimal.NewFromInt(2)

// stateNames maps the 2-digit jurisdiction prefix of a GSTIN to the state
// name Tally expects in place-of-supply fields.
var stateNames = map[string]string{
	"01": "Jammu & Kashmir", "02": "Himachal Pradesh", "03": "Punjab", "04": "Chandigarh",
	"05": "Uttarakhand", "06": "Haryana", "07": "Delhi", "08": "Rajasthan",
	"09": "Uttar Pradesh", "10": "Bihar", "11": "Sikkim", "12": "Arunachal Pradesh",
	"13": "Nagaland", "14": "Manipur", "15": "Mizoram", "16": "Tripura",
	"17": "Meghalaya", "18": "Assam", "19": "West Bengal", "20": "Jharkhand",
	"21": "Odisha", "22": "Chhattisgarh", "23": "Madhya Pradesh", "24": "Gujarat",
	"25": "Daman & Diu", "26": "Dadra & Nagar Haveli", "27": "Maharashtra", "29": "Karnataka",
	"30": "Goa", "31": "Lakshadweep", "32": "Kerala", "33": "Tamil Nadu",
	"34": "Puducherry", "35": "Andaman & Nicobar Islands", "36": "Telangana",
	"37": "Andhra Pradesh", "38": "Ladakh",
}

// Normalize trims and upper-cases a raw registration identifier.
func Normalize(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// IsValidGSTIN reports whether the identifier has the expected fixed length.
func IsValidGSTIN(gstin string) bool {
	return len(Normalize(gstin)) == GSTINLength
}

// StateCode returns the 2-digit jurisdiction prefix, or "" when the
// identifier is too short to carry one.
func StateCode(gstin string) string {
	g := Normalize(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}

// StateName resolves the jurisdiction prefix of a GSTIN to its display name.
// Unknown codes resolve to the empty string, not an error.
func StateName(gstin string) string {
	return stateNames[StateCode(gstin)]
}

// ResolveDocumentRegime decides the document-level topology.
//
// When both identifiers are present and well-formed, their jurisdiction
// prefixes decide: unequal means interstate. Otherwise any explicit
// interstate line flag forces the document interstate, and the default is
// intrastate.
func ResolveDocumentRegime(srcGSTIN, dstGSTIN string, lineFlags []*Regime) Regime {
	src, dst := Normalize(srcGSTIN), Normalize(dstGSTIN)
	if len(src) == GSTINLength && len(dst) == GSTINLength {
		if src[:2] != dst[:2] {
			return Interstate
		}
		return Intrastate
	}
	for _, f := range lineFlags {
		if f != nil && *f == Interstate {
			return Interstate
		}
	}
	return Intrastate
}

// LineRegime applies a per-line override on top of the document decision.
func LineRegime(document Regime, override *Regime) Regime {
	if override != nil {
		return *override
	}
	return document
}

// HalfRate returns rate/2 for the two intrastate levies.
func HalfRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(two)
}

// SplitTax divides a computed tax amount between the CGST and SGST halves.
// CGST takes round2(tax/2); the odd paisa, when the rounded halves disagree,
// lands on the SGST side so the two always sum back to the full tax.
func SplitTax(tax decimal.Decimal) (cgst, sgst decimal.Decimal) {
	cgst = money.Round2(tax.Div(two))
	sgst = money.Round2(tax.Sub(cgst))
	return cgst, sgst
}
