package tallyxml

import (
	"github.com/shopspring/decimal"

	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

// VoucherStyle selects which of Tally's voucher shapes to emit. The three
// shapes differ in which entry list tags they use and whether inventory
// allocations appear.
type VoucherStyle int

const (
	// InvoiceStyle renders a single trade invoice with stock-item
	// allocations and a bill reference on the party entry.
	InvoiceStyle VoucherStyle = iota
	// AccountingStyle renders an accounting-only invoice, used for
	// spreadsheet-derived vouchers that carry no inventory.
	AccountingStyle
	// BankStyle renders a two-sided payment/receipt/contra voucher.
	BankStyle
)

// Amounts are stored debit-positive in the model; Tally's wire convention is
// the mirror image. wireAmount and deemedPositive must stay consistent with
// each other or Tally reports the voucher out of balance.
func wireAmount(model decimal.Decimal) string {
	return money.Format2(model.Neg())
}

func deemedPositive(model decimal.Decimal) string {
	if model.IsPositive() {
		return "Yes"
	}
	return "No"
}

// BuildVoucher renders one assembled voucher as a TALLYMESSAGE.
func BuildVoucher(v models.VoucherPayload, style VoucherStyle) *Element {
	voucher := NewElement("VOUCHER").
		WithAttr("VCHTYPE", string(v.Type)).
		WithAttr("ACTION", "Create").
		WithAttr("OBJVIEW", objView(style)).
		AddText("DATE", v.Date).
		AddText("EFFECTIVEDATE", v.Date).
		AddText("VOUCHERTYPENAME", string(v.Type)).
		AddText("VOUCHERNUMBER", v.Number).
		AddText("PARTYLEDGERNAME", v.PartyLedgerName).
		AddText("PERSISTEDVIEW", objView(style))
	if v.GUID != "" {
		voucher.AddText("GUID", v.GUID)
	}
	if style != BankStyle {
		voucher.AddText("ISINVOICE", "Yes").
			AddText("BASICBUYERNAME", v.PartyLedgerName)
		if v.PartyGSTIN != "" {
			voucher.AddText("PARTYGSTIN", v.PartyGSTIN)
		}
		if v.StateName != "" {
			voucher.AddText("STATENAME", v.StateName)
		}
		if v.PlaceOfSupply != "" {
			voucher.AddText("PLACEOFSUPPLY", v.PlaceOfSupply)
		}
		if v.PartyAddress != "" {
			voucher.Add(NewElement("ADDRESS.LIST").
				WithAttr("TYPE", "String").
				AddText("ADDRESS", v.PartyAddress))
		}
	}
	if v.Narration != "" {
		voucher.AddText("NARRATION", v.Narration)
	}

	switch style {
	case InvoiceStyle:
		voucher.Add(partyEntry("LEDGERENTRIES.LIST", v, true))
		for _, inv := range v.Inventory {
			voucher.Add(inventoryEntry(inv))
		}
		remaining := append([]models.InventoryLine(nil), v.Inventory...)
		for _, e := range v.LineEntries {
			if covered, rest := consumeInventory(remaining, e); covered {
				remaining = rest
			} else {
				voucher.Add(ledgerEntry("LEDGERENTRIES.LIST", e))
			}
		}
	case AccountingStyle:
		voucher.Add(partyEntry("ALLLEDGERENTRIES.LIST", v, true))
		for _, e := range v.LineEntries {
			voucher.Add(ledgerEntry("LEDGERENTRIES.LIST", e))
		}
	case BankStyle:
		voucher.Add(partyEntry("ALLLEDGERENTRIES.LIST", v, false))
		for _, e := range v.LineEntries {
			voucher.Add(ledgerEntry("ALLLEDGERENTRIES.LIST", e))
		}
	}
	return Message(voucher)
}

func objView(style VoucherStyle) string {
	switch style {
	case InvoiceStyle, AccountingStyle:
		return "Invoice Voucher View"
	default:
		return "Accounting Voucher View"
	}
}

// partyEntry emits the party-side entry, optionally carrying a New Ref bill
// allocation so receivables/payables stay bill-traceable.
func partyEntry(tag string, v models.VoucherPayload, billwise bool) *Element {
	entry := NewElement(tag).
		AddText("LEDGERNAME", v.PartyLedgerName).
		AddText("ISDEEMEDPOSITIVE", deemedPositive(v.PartyAmount)).
		AddText("AMOUNT", wireAmount(v.PartyAmount))
	if billwise && v.Number != "" {
		entry.Add(NewElement("BILLALLOCATIONS.LIST").
			AddText("NAME", v.Number).
			AddText("BILLTYPE", "New Ref").
			AddText("AMOUNT", wireAmount(v.PartyAmount)))
	}
	return entry
}

func ledgerEntry(tag string, e models.LedgerEntry) *Element {
	return NewElement(tag).
		AddText("LEDGERNAME", e.LedgerName).
		AddText("ISDEEMEDPOSITIVE", deemedPositive(e.Amount)).
		AddText("AMOUNT", wireAmount(e.Amount))
}

// inventoryEntry allocates one stock line to its revenue ledger. The nested
// accounting allocation replaces the flat ledger entry for that ledger.
func inventoryEntry(inv models.InventoryLine) *Element {
	qty := inv.Quantity
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	return NewElement("ALLINVENTORYENTRIES.LIST").
		AddText("STOCKITEMNAME", inv.StockItemName).
		AddText("ISDEEMEDPOSITIVE", deemedPositive(inv.Amount)).
		AddText("RATE", money.Format2(inv.UnitRate)+"/Nos").
		AddText("AMOUNT", wireAmount(inv.Amount)).
		AddText("ACTUALQTY", qty.String()+" Nos").
		AddText("BILLEDQTY", qty.String()+" Nos").
		Add(NewElement("ACCOUNTINGALLOCATIONS.LIST").
			AddText("LEDGERNAME", inv.LedgerName).
			AddText("ISDEEMEDPOSITIVE", deemedPositive(inv.Amount)).
			AddText("AMOUNT", wireAmount(inv.Amount)))
}

// consumeInventory reports whether a line entry's value already went out
// through one of the remaining inventory allocations; the match, if any, is
// removed so duplicate lines each consume their own allocation.
func consumeInventory(inventory []models.InventoryLine, e models.LedgerEntry) (bool, []models.InventoryLine) {
	if e.LedgerName == models.RoundOffLedgerName {
		return false, inventory
	}
	for i, inv := range inventory {
		if inv.LedgerName == e.LedgerName && inv.Amount.Equal(e.Amount) {
			return true, append(inventory[:i:i], inventory[i+1:]...)
		}
	}
	return false, inventory
}
