package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/autoledger-in/tallybridge/internal/gst"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/normalize"
	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

// taxEntry is one computed levy on a line.
type taxEntry struct {
	ledgerName string
	head       models.DutyHead
	rate       decimal.Decimal
	amount     decimal.Decimal
}

// linePlan is one line with its taxes resolved: ledger name picked, regime
// applied, amounts rounded to the paisa.
type linePlan struct {
	source     models.LineItem
	ledgerName string
	rate       decimal.Decimal
	regime     gst.Regime
	taxes      []taxEntry
}

// total is the line's taxable value plus every levy on it.
func (p linePlan) total() decimal.Decimal {
	sum := p.source.TaxableAmount
	for _, t := range p.taxes {
		sum = sum.Add(t.amount)
	}
	return sum
}

// recordPlan is a record with every line planned and the document regime
// decided.
type recordPlan struct {
	regime      gst.Regime
	lines       []linePlan
	diagnostics []string
}

// actualTotal is the full-precision voucher value before whole-unit rounding.
func (p recordPlan) actualTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range p.lines {
		sum = sum.Add(l.total())
	}
	return sum
}

// documentRegime decides the record's topology. When the record's own
// registration is unusable, a valid party registration is compared against
// the configured home state; past that the line flags and the intrastate
// default take over. The second return is false when the decision fell
// through to the default with nothing to base it on.
func documentRegime(rec models.TransactionRecord, homeStateCode string) (gst.Regime, bool) {
	ownValid := gst.IsValidGSTIN(rec.OwnTaxID)
	partyValid := gst.IsValidGSTIN(rec.PartyTaxID)
	if !ownValid && partyValid && homeStateCode != "" {
		if gst.StateCode(rec.PartyTaxID) != homeStateCode {
			return gst.Interstate, true
		}
		return gst.Intrastate, true
	}
	regime := gst.ResolveDocumentRegime(rec.OwnTaxID, rec.PartyTaxID, rec.LineFlags())
	if ownValid && partyValid {
		return regime, true
	}
	for _, f := range rec.LineFlags() {
		if f != nil {
			return regime, true
		}
	}
	return regime, false
}

// planRecord resolves ledger names and tax amounts for every line of a
// record. Explicit tax figures from the source document win over the
// rate-based computation.
func planRecord(rec models.TransactionRecord, homeStateCode string) recordPlan {
	var plan recordPlan
	regime, grounded := documentRegime(rec, homeStateCode)
	plan.regime = regime
	if !grounded {
		plan.diagnostics = append(plan.diagnostics,
			fmt.Sprintf("document %q: tax regime defaulted to intrastate, no usable GSTIN on either side", rec.DocumentRef))
	}

	for i, li := range rec.Lines {
		lp := linePlan{source: li, rate: li.TaxRate}
		lp.regime = gst.LineRegime(regime, li.ExplicitRegime)
		if li.LedgerName != "" {
			lp.ledgerName = normalize.SanitizeName(li.LedgerName)
		} else {
			lp.ledgerName = revenueLedgerName(rec.Direction, li.TaxRate)
		}

		switch {
		case li.HasExplicitTax():
			lp.taxes = explicitTaxes(rec.Direction, li)
		case li.TaxRate.IsPositive():
			tax := money.Round2(li.TaxableAmount.Mul(li.TaxRate).Div(decimal.NewFromInt(100)))
			if lp.regime == gst.Interstate {
				lp.taxes = append(lp.taxes, taxEntry{
					ledgerName: igstLedgerName(rec.Direction, li.TaxRate),
					head:       models.IntegratedTax,
					rate:       li.TaxRate,
					amount:     tax,
				})
			} else {
				cgst, sgst := gst.SplitTax(tax)
				lp.taxes = append(lp.taxes,
					taxEntry{
						ledgerName: cgstLedgerName(rec.Direction, li.TaxRate),
						head:       models.CentralTax,
						rate:       gst.HalfRate(li.TaxRate),
						amount:     cgst,
					},
					taxEntry{
						ledgerName: sgstLedgerName(rec.Direction, li.TaxRate),
						head:       models.StateTax,
						rate:       gst.HalfRate(li.TaxRate),
						amount:     sgst,
					},
				)
			}
		}
		if li.Cess.IsPositive() && !li.HasExplicitTax() {
			lp.taxes = append(lp.taxes, taxEntry{
				ledgerName: cessLedgerName(rec.Direction),
				head:       models.CessDuty,
				amount:     money.Round2(li.Cess),
			})
		}
		if li.Description == "" && li.LedgerName == "" {
			plan.diagnostics = append(plan.diagnostics,
				fmt.Sprintf("document %q line %d: missing description, ledger name derived from rate", rec.DocumentRef, i+1))
		}
		plan.lines = append(plan.lines, lp)
	}
	return plan
}

// explicitTaxes carries the source document's own split through unchanged.
func explicitTaxes(dir models.Direction, li models.LineItem) []taxEntry {
	var taxes []taxEntry
	if li.IGST.IsPositive() {
		taxes = append(taxes, taxEntry{
			ledgerName: igstLedgerName(dir, li.TaxRate),
			head:       models.IntegratedTax,
			rate:       li.TaxRate,
			amount:     money.Round2(li.IGST),
		})
	}
	if li.CGST.IsPositive() {
		taxes = append(taxes, taxEntry{
			ledgerName: cgstLedgerName(dir, li.TaxRate),
			head:       models.CentralTax,
			rate:       gst.HalfRate(li.TaxRate),
			amount:     money.Round2(li.CGST),
		})
	}
	if li.SGST.IsPositive() {
		taxes = append(taxes, taxEntry{
			ledgerName: sgstLedgerName(dir, li.TaxRate),
			head:       models.StateTax,
			rate:       gst.HalfRate(li.TaxRate),
			amount:     money.Round2(li.SGST),
		})
	}
	if li.Cess.IsPositive() {
		taxes = append(taxes, taxEntry{
			ledgerName: cessLedgerName(dir),
			head:       models.CessDuty,
			amount:     money.Round2(li.Cess),
		})
	}
	return taxes
}
