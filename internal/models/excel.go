package models

import "github.com/shopspring/decimal"

// ExcelRow is one flat parsed spreadsheet row before grouping. Rows sharing
// an (invoice number, party, date) key merge into one voucher.
type ExcelRow struct {
	Date          string          `json:"date"`
	InvoiceNo     string          `json:"invoiceNo"`
	PartyName     string          `json:"partyName"`
	GSTIN         string          `json:"gstin"`
	Address       string          `json:"address"`
	PlaceOfSupply string          `json:"placeOfSupply"`
	Direction     Direction       `json:"direction"`
	Amount        decimal.Decimal `json:"amount"` // taxable value
	TaxRate       decimal.Decimal `json:"taxRate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Cess          decimal.Decimal `json:"cess"`
	LedgerName    string          `json:"ledgerName"`
	Period        string          `json:"period"`
}

// ExcelVoucher is one logical voucher assembled from grouped rows. The
// grouping engine fills TotalAmount with the whole-unit rounded total and
// RoundOff with the difference against the full-precision sum.
type ExcelVoucher struct {
	Date          string          `json:"date"`
	InvoiceNo     string          `json:"invoiceNo"`
	PartyName     string          `json:"partyName"`
	GSTIN         string          `json:"gstin"`
	Address       string          `json:"address"`
	PlaceOfSupply string          `json:"placeOfSupply"`
	Direction     Direction       `json:"direction"`
	Period        string          `json:"period"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	RoundOff      decimal.Decimal `json:"roundOff"`
}

// Record converts the grouped voucher into the canonical TransactionRecord
// consumed by the voucher assembler.
func (v ExcelVoucher) Record() TransactionRecord {
	roundOff := v.RoundOff
	return TransactionRecord{
		Date:          v.Date,
		DocumentRef:   v.InvoiceNo,
		PartyName:     v.PartyName,
		PartyTaxID:    v.GSTIN,
		PartyAddress:  v.Address,
		PlaceOfSupply: v.PlaceOfSupply,
		Period:        v.Period,
		Direction:     v.Direction,
		Lines:         v.Items,
		RoundOff:      &roundOff,
	}
}
