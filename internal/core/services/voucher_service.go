package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/gst"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/normalize"
	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

var (
	ErrNoLines           = errors.New("record has no line items")
	ErrVoucherUnbalanced = errors.New("assembled voucher does not balance to zero")
	ErrEmptyStatement    = errors.New("bank statement has no transactions")
)

// voucherService assembles balanced vouchers from normalized records. All
// three entry points share one core so the sign convention and rounding
// cannot drift between paths.
type voucherService struct {
	homeStateCode string
	narrationTag  string
}

// NewVoucherService creates the voucher assembler. narrationTag, when
// non-empty, is appended to every narration so imported vouchers are
// traceable to this tool.
func NewVoucherService(homeStateCode, narrationTag string) portssvc.VoucherAssemblerSvc {
	return &voucherService{homeStateCode: homeStateCode, narrationTag: narrationTag}
}

var _ portssvc.VoucherAssemblerSvc = (*voucherService)(nil)

// signFor encodes the double-entry convention in one place. Amounts are
// debit-positive: a sale debits the party and credits the value lines, a
// purchase mirrors that.
func signFor(role models.EntryRole, dir models.Direction) decimal.Decimal {
	positive := decimal.NewFromInt(1)
	negative := decimal.NewFromInt(-1)
	switch dir {
	case models.Purchase:
		if role == models.PartyRole {
			return negative
		}
		return positive
	default: // Sale
		if role == models.PartyRole {
			return positive
		}
		return negative
	}
}

func (s *voucherService) AssembleInvoice(ctx context.Context, rec models.TransactionRecord) (models.VoucherPayload, []string, error) {
	payload, diags, err := s.assembleVoucher(ctx, rec, true)
	if err != nil {
		return models.VoucherPayload{}, diags, err
	}
	return payload, diags, nil
}

func (s *voucherService) AssembleBulk(ctx context.Context, recs []models.TransactionRecord) ([]models.VoucherPayload, []string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	payloads := make([]models.VoucherPayload, 0, len(recs))
	var diagnostics []string
	for i, rec := range recs {
		payload, diags, err := s.assembleVoucher(ctx, rec, false)
		diagnostics = append(diagnostics, diags...)
		if err != nil {
			return nil, diagnostics, fmt.Errorf("record %d (%s): %w", i+1, rec.DocumentRef, err)
		}
		payloads = append(payloads, payload)
	}
	logger.Info("Assembled voucher batch", slog.Int("count", len(payloads)))
	return payloads, diagnostics, nil
}

// assembleVoucher is the single assembly core behind the invoice and bulk
// paths. The party amount is derived from the other entries, never computed
// independently, so the voucher balances by construction.
func (s *voucherService) assembleVoucher(ctx context.Context, rec models.TransactionRecord, inventory bool) (models.VoucherPayload, []string, error) {
	if len(rec.Lines) == 0 {
		return models.VoucherPayload{}, nil, ErrNoLines
	}

	var diagnostics []string
	wireDate, ok := normalize.FormatWireDate(rec.Date)
	if !ok {
		diagnostics = append(diagnostics,
			fmt.Sprintf("document %q: unparseable date %q, defaulted to today", rec.DocumentRef, rec.Date))
	}

	plan := planRecord(rec, s.homeStateCode)
	diagnostics = append(diagnostics, plan.diagnostics...)

	lineSign := signFor(models.LineRole, rec.Direction)
	var entries []models.LedgerEntry
	var inventoryLines []models.InventoryLine

	// Tax entries aggregate per ledger across lines; value entries stay
	// one per line so inventory allocations can mirror them.
	taxTotals := map[string]decimal.Decimal{}
	var taxOrder []string
	for _, lp := range plan.lines {
		taxable := money.Round2(lp.source.TaxableAmount)
		entries = append(entries, models.LedgerEntry{
			LedgerName: lp.ledgerName,
			Amount:     taxable.Mul(lineSign),
		})
		if inventory {
			inventoryLines = append(inventoryLines, s.inventoryLine(lp, taxable.Mul(lineSign)))
		}
		for _, tx := range lp.taxes {
			if _, seen := taxTotals[tx.ledgerName]; !seen {
				taxOrder = append(taxOrder, tx.ledgerName)
			}
			taxTotals[tx.ledgerName] = taxTotals[tx.ledgerName].Add(tx.amount)
		}
	}
	for _, name := range taxOrder {
		entries = append(entries, models.LedgerEntry{
			LedgerName: name,
			Amount:     taxTotals[name].Mul(lineSign),
		})
	}

	actual := plan.actualTotal()
	var roundOff decimal.Decimal
	if rec.RoundOff != nil {
		roundOff = money.Round2(*rec.RoundOff)
	} else {
		roundOff = money.RoundWhole(actual).Sub(actual)
	}
	if !roundOff.IsZero() {
		entries = append(entries, models.LedgerEntry{
			LedgerName: models.RoundOffLedgerName,
			Amount:     roundOff.Mul(lineSign),
		})
	}

	partyAmount := decimal.Zero
	for _, e := range entries {
		partyAmount = partyAmount.Sub(e.Amount)
	}

	partyName := normalize.SanitizeName(rec.PartyName)
	gstin := gst.Normalize(rec.PartyTaxID)
	if !gst.IsValidGSTIN(gstin) {
		gstin = ""
	}
	stateName := gst.StateName(rec.PartyTaxID)
	if stateName == "" {
		stateName = rec.PlaceOfSupply
	}

	payload := models.VoucherPayload{
		Type:            rec.Direction,
		Date:            wireDate,
		Number:          rec.DocumentRef,
		PartyLedgerName: partyName,
		PartyAmount:     partyAmount,
		PartyGSTIN:      gstin,
		PartyAddress:    rec.PartyAddress,
		StateName:       stateName,
		PlaceOfSupply:   stateName,
		Narration:       s.narration(rec, partyName),
		LineEntries:     entries,
		RoundOffAmount:  roundOff,
		Inventory:       inventoryLines,
	}
	if !payload.Balance().IsZero() {
		return models.VoucherPayload{}, diagnostics, ErrVoucherUnbalanced
	}
	return payload, diagnostics, nil
}

// inventoryLine mirrors a value entry as a stock allocation. Quantity
// defaults to one unit at the full line value.
func (s *voucherService) inventoryLine(lp linePlan, signedAmount decimal.Decimal) models.InventoryLine {
	qty := lp.source.Quantity
	rate := lp.source.UnitRate
	if qty.IsZero() || qty.IsNegative() {
		qty = decimal.NewFromInt(1)
		rate = lp.source.TaxableAmount
	} else if rate.IsZero() {
		rate = lp.source.TaxableAmount.Div(qty)
	}
	name := lp.source.Description
	if name == "" {
		name = lp.ledgerName
	}
	return models.InventoryLine{
		StockItemName: normalize.SanitizeName(name),
		Quantity:      qty,
		UnitRate:      money.Round2(rate),
		Amount:        signedAmount,
		LedgerName:    lp.ledgerName,
		TaxRate:       lp.rate,
	}
}

func (s *voucherService) narration(rec models.TransactionRecord, partyName string) string {
	verb := "sold to"
	if rec.Direction == models.Purchase {
		verb = "purchased from"
	}
	n := fmt.Sprintf("Being goods %s %s vide Inv No. %s", verb, partyName, rec.DocumentRef)
	if rec.Period != "" {
		n += " for " + rec.Period
	}
	if s.narrationTag != "" {
		n += " | " + s.narrationTag
	}
	return n
}

func (s *voucherService) AssembleBank(ctx context.Context, stmt models.BankStatement) ([]models.VoucherPayload, []string, error) {
	if len(stmt.Transactions) == 0 {
		return nil, nil, ErrEmptyStatement
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	bankName := normalize.SanitizeName(stmt.BankLedgerName)
	payloads := make([]models.VoucherPayload, 0, len(stmt.Transactions))
	var diagnostics []string
	for i, t := range stmt.Transactions {
		wireDate, ok := normalize.FormatWireDate(t.Date)
		if !ok {
			diagnostics = append(diagnostics,
				fmt.Sprintf("bank line %d: unparseable date %q, defaulted to today", i+1, t.Date))
		}
		contra := models.SuspenseLedgerName
		if t.ContraLedger != "" {
			contra = normalize.SanitizeName(t.ContraLedger)
		} else {
			diagnostics = append(diagnostics,
				fmt.Sprintf("bank line %d (%q): no contra ledger mapped, booked to %s", i+1, t.Description, models.SuspenseLedgerName))
		}

		amount := money.Round2(t.Amount())
		// A payment credits the bank and debits the contra side; a
		// receipt mirrors that.
		bankAmount := amount.Neg()
		if t.Direction == models.Receipt || (t.Direction == models.Contra && t.Deposit.IsPositive()) {
			bankAmount = amount
		}

		narration := t.Description
		if s.narrationTag != "" {
			narration += " | " + s.narrationTag
		}
		payload := models.VoucherPayload{
			Type:            t.Direction,
			Date:            wireDate,
			PartyLedgerName: bankName,
			PartyAmount:     bankAmount,
			Narration:       narration,
			LineEntries: []models.LedgerEntry{{
				LedgerName: contra,
				Amount:     bankAmount.Neg(),
			}},
		}
		payloads = append(payloads, payload)
	}
	logger.Info("Assembled bank statement", slog.Int("count", len(payloads)), slog.String("bank", bankName))
	return payloads, diagnostics, nil
}
