package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

// groupingService merges flat spreadsheet rows into logical vouchers. Rows
// sharing an invoice number, party and date are lines of one document.
type groupingService struct{}

// NewGroupingService creates the row grouper.
func NewGroupingService() portssvc.RowGrouperSvc {
	return &groupingService{}
}

var _ portssvc.RowGrouperSvc = (*groupingService)(nil)

// groupKey is case-insensitive on the textual parts so "ACME" and "Acme"
// rows land in the same voucher.
func groupKey(row models.ExcelRow) string {
	return strings.ToLower(strings.TrimSpace(row.InvoiceNo)) + "_" +
		strings.ToLower(strings.TrimSpace(row.PartyName)) + "_" +
		strings.TrimSpace(row.Date)
}

// usable rejects only rows that carry nothing to post: no invoice number,
// no party and no positive amount in either value column. A row missing
// some of those still groups; its gaps surface as diagnostics downstream.
func usable(row models.ExcelRow) bool {
	return strings.TrimSpace(row.InvoiceNo) != "" ||
		strings.TrimSpace(row.PartyName) != "" ||
		row.Amount.IsPositive() ||
		row.TotalAmount.IsPositive()
}

func (s *groupingService) GroupRows(ctx context.Context, rows []models.ExcelRow) ([]models.ExcelVoucher, int, []string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Accumulate full-precision totals per group and round once at the
	// end, so a many-line voucher cannot drift by a paisa per line.
	type group struct {
		voucher models.ExcelVoucher
		sum     decimal.Decimal
	}
	var order []string
	groups := map[string]*group{}

	skipped := 0
	var diagnostics []string
	for i, row := range rows {
		if !usable(row) {
			skipped++
			diagnostics = append(diagnostics,
				fmt.Sprintf("row %d: skipped, no invoice number, party or amount", i+1))
			continue
		}
		key := groupKey(row)
		g, ok := groups[key]
		if !ok {
			g = &group{voucher: models.ExcelVoucher{
				Date:          row.Date,
				InvoiceNo:     row.InvoiceNo,
				PartyName:     row.PartyName,
				GSTIN:         row.GSTIN,
				Address:       row.Address,
				PlaceOfSupply: row.PlaceOfSupply,
				Direction:     directionOrDefault(row.Direction),
				Period:        row.Period,
			}}
			groups[key] = g
			order = append(order, key)
		} else {
			// Later rows may fill header fields the first row lacked.
			if g.voucher.GSTIN == "" {
				g.voucher.GSTIN = row.GSTIN
			}
			if g.voucher.Address == "" {
				g.voucher.Address = row.Address
			}
			if g.voucher.PlaceOfSupply == "" {
				g.voucher.PlaceOfSupply = row.PlaceOfSupply
			}
		}

		item := models.LineItem{
			Description:   row.LedgerName,
			TaxableAmount: row.Amount,
			TaxRate:       row.TaxRate,
			LedgerName:    row.LedgerName,
			IGST:          row.IGST,
			CGST:          row.CGST,
			SGST:          row.SGST,
			Cess:          row.Cess,
		}
		g.voucher.Items = append(g.voucher.Items, item)
		g.sum = g.sum.Add(rowTotal(row))
	}

	vouchers := make([]models.ExcelVoucher, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rounded := money.RoundWhole(g.sum)
		g.voucher.TotalAmount = rounded
		g.voucher.RoundOff = rounded.Sub(g.sum)
		vouchers = append(vouchers, g.voucher)
	}

	logger.Info("Grouped spreadsheet rows",
		slog.Int("rows", len(rows)),
		slog.Int("vouchers", len(vouchers)),
		slog.Int("skipped", skipped),
	)
	return vouchers, skipped, diagnostics
}

// rowTotal prefers the row's own total column; otherwise taxable plus every
// tax column, and failing that taxable scaled by the rate.
func rowTotal(row models.ExcelRow) decimal.Decimal {
	if row.TotalAmount.IsPositive() {
		return row.TotalAmount
	}
	taxes := row.IGST.Add(row.CGST).Add(row.SGST).Add(row.Cess)
	if taxes.IsPositive() {
		return row.Amount.Add(taxes)
	}
	if row.TaxRate.IsPositive() {
		return row.Amount.Add(row.Amount.Mul(row.TaxRate).Div(decimal.NewFromInt(100)))
	}
	return row.Amount
}

func directionOrDefault(d models.Direction) models.Direction {
	if d == "" {
		return models.Sale
	}
	return d
}
