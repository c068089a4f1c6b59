package services

import (
	"github.com/shopspring/decimal"

	"github.com/autoledger-in/tallybridge/internal/gst"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/normalize"
)

// Derived ledger names embed the rate so each rate maps to its own ledger,
// the way GST filing wants them separated.

func revenueLedgerName(dir models.Direction, rate decimal.Decimal) string {
	base := "Sale"
	if dir == models.Purchase {
		base = "Purchase"
	}
	if rate.IsZero() {
		return base
	}
	return base + " " + normalize.FormatRate(rate) + "%"
}

// taxSide is "Output" for sales-side collection, "Input" for purchase-side
// credit.
func taxSide(dir models.Direction) string {
	if dir == models.Purchase {
		return "Input"
	}
	return "Output"
}

func igstLedgerName(dir models.Direction, rate decimal.Decimal) string {
	return taxSide(dir) + " IGST " + normalize.FormatRate(rate) + "%"
}

func cgstLedgerName(dir models.Direction, rate decimal.Decimal) string {
	return taxSide(dir) + " CGST " + normalize.FormatRate(gst.HalfRate(rate)) + "%"
}

func sgstLedgerName(dir models.Direction, rate decimal.Decimal) string {
	return taxSide(dir) + " SGST " + normalize.FormatRate(gst.HalfRate(rate)) + "%"
}

func cessLedgerName(dir models.Direction) string {
	return taxSide(dir) + " Cess"
}

func partyGroup(dir models.Direction) string {
	if dir == models.Purchase {
		return models.GroupSundryCreditors
	}
	return models.GroupSundryDebtors
}

func revenueGroup(dir models.Direction) string {
	if dir == models.Purchase {
		return models.GroupPurchaseAccounts
	}
	return models.GroupSalesAccounts
}
