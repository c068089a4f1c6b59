package models

import (
	"github.com/shopspring/decimal"

	"github.com/autoledger-in/tallybridge/internal/gst"
)

// Direction classifies what kind of voucher a record produces.
type Direction string

const (
	Sale     Direction = "Sales"
	Purchase Direction = "Purchase"
	Payment  Direction = "Payment"
	Receipt  Direction = "Receipt"
	Contra   Direction = "Contra"
)

// IsBank reports whether the direction belongs to the bank-statement path.
func (d Direction) IsBank() bool {
	return d == Payment || d == Receipt || d == Contra
}

// LineItem is one taxable line of a transaction record.
//
// TaxableAmount is the pre-tax value. When the source document already
// carries computed tax figures (spreadsheet imports exporting IGST/CGST/SGST
// columns), those override the rate-based computation.
type LineItem struct {
	Description   string          `json:"description"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	TaxRate       decimal.Decimal `json:"taxRatePercent"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitRate      decimal.Decimal `json:"unitRate"`
	// ExplicitRegime forces the tax topology for this line only.
	ExplicitRegime *gst.Regime `json:"explicitTaxRegime,omitempty"`
	// LedgerName overrides the derived revenue/expense ledger name.
	LedgerName string `json:"ledgerName,omitempty"`
	// Explicit tax amounts from the source document; zero means "compute".
	IGST decimal.Decimal `json:"igst"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	Cess decimal.Decimal `json:"cess"`
}

// HasExplicitTax reports whether the source supplied its own tax split.
func (li LineItem) HasExplicitTax() bool {
	return li.IGST.IsPositive() || li.CGST.IsPositive() || li.SGST.IsPositive()
}

// TransactionRecord is the canonical unit of work: one normalized document
// (or row group) ready for voucher assembly. Records are built by the
// extraction/mapping layer and passed in; the engine never mutates them.
type TransactionRecord struct {
	Date          string     `json:"date"`
	DocumentRef   string     `json:"documentRef"`
	PartyName     string     `json:"partyName"`
	PartyTaxID    string     `json:"partyTaxId"`
	OwnTaxID      string     `json:"ownTaxId"`
	PartyAddress  string     `json:"partyAddress"`
	PlaceOfSupply string     `json:"placeOfSupply"`
	Period        string     `json:"period"`
	Direction     Direction  `json:"direction" binding:"omitempty,direction"`
	Lines         []LineItem `json:"lines"`
	// RoundOff, when set by the grouping engine, is reused instead of being
	// recomputed so the voucher total matches what the user previewed.
	RoundOff *decimal.Decimal `json:"roundOff,omitempty"`
}

// LineFlags collects the per-line regime overrides for document-level
// topology resolution.
func (r TransactionRecord) LineFlags() []*gst.Regime {
	flags := make([]*gst.Regime, len(r.Lines))
	for i := range r.Lines {
		flags[i] = r.Lines[i].ExplicitRegime
	}
	return flags
}

// EntryRole distinguishes the party line from the value/tax lines when
// deciding signs.
type EntryRole string

const (
	PartyRole EntryRole = "PARTY"
	LineRole  EntryRole = "LINE"
)

// LedgerEntry is one signed line of an assembled voucher. Positive amounts
// are debits, negative amounts credits.
type LedgerEntry struct {
	LedgerName string          `json:"ledgerName"`
	Amount     decimal.Decimal `json:"amount"`
	IsParty    bool            `json:"isParty"`
}

// VoucherPayload is one balanced double-entry voucher ready for
// serialization. The signed sum of PartyAmount and every line entry is
// exactly zero; the round-off entry is part of LineEntries when nonzero.
type VoucherPayload struct {
	Type            Direction       `json:"type"`
	Date            string          `json:"date"` // wire form YYYYMMDD
	Number          string          `json:"number"`
	GUID            string          `json:"guid"`
	PartyLedgerName string          `json:"partyLedgerName"`
	PartyAmount     decimal.Decimal `json:"partyAmount"`
	PartyGSTIN      string          `json:"partyGstin"`
	PartyAddress    string          `json:"partyAddress"`
	StateName       string          `json:"stateName"`
	PlaceOfSupply   string          `json:"placeOfSupply"`
	Narration       string          `json:"narration"`
	LineEntries     []LedgerEntry   `json:"lineEntries"`
	RoundOffAmount  decimal.Decimal `json:"roundOffAmount"`
	Inventory       []InventoryLine `json:"inventory,omitempty"`
}

// InventoryLine carries the stock-item allocation emitted on the
// single-invoice path.
type InventoryLine struct {
	StockItemName string          `json:"stockItemName"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitRate      decimal.Decimal `json:"unitRate"`
	Amount        decimal.Decimal `json:"amount"`
	LedgerName    string          `json:"ledgerName"`
	TaxRate       decimal.Decimal `json:"taxRate"`
}

// Balance returns the signed sum of all entries; zero for a well-formed
// voucher.
func (v VoucherPayload) Balance() decimal.Decimal {
	sum := v.PartyAmount
	for _, e := range v.LineEntries {
		sum = sum.Add(e.Amount)
	}
	return sum
}
