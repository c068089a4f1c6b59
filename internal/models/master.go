package models

import "github.com/shopspring/decimal"

// MasterKind classifies a ledger master requirement.
type MasterKind string

const (
	PartyMaster     MasterKind = "PARTY"
	RevenueMaster   MasterKind = "REVENUE_OR_EXPENSE"
	TaxDutyMaster   MasterKind = "TAX_DUTY"
	RoundOffMaster  MasterKind = "ROUND_OFF"
	BankMaster      MasterKind = "BANK"
	StockItemMaster MasterKind = "STOCK_ITEM"
)

// Parent group names as Tally knows them.
const (
	GroupSundryDebtors    = "Sundry Debtors"
	GroupSundryCreditors  = "Sundry Creditors"
	GroupSalesAccounts    = "Sales Accounts"
	GroupPurchaseAccounts = "Purchase Accounts"
	GroupDutiesAndTaxes   = "Duties & Taxes"
	GroupIndirectExpenses = "Indirect Expenses"
	GroupBankAccounts     = "Bank Accounts"
)

// RoundOffLedgerName is the dedicated adjustment ledger every voucher with a
// fractional total references.
const RoundOffLedgerName = "Round Off"

// DutyHead identifies which GST levy a tax-duty ledger collects.
type DutyHead string

const (
	IntegratedTax DutyHead = "Integrated Tax"
	CentralTax    DutyHead = "Central Tax"
	StateTax      DutyHead = "State Tax"
	CessDuty      DutyHead = "Cess"
)

// TaxMetadata is the GST detail attached to masters that need it.
type TaxMetadata struct {
	DutyHead DutyHead        `json:"dutyHead,omitempty"`
	Rate     decimal.Decimal `json:"rate"`
}

// MasterRequirement is one ledger (or stock item) that must exist in Tally
// before the vouchers referencing it can import. Requirements are derived,
// stateless and deduplicated by Name within a company's namespace.
type MasterRequirement struct {
	Name        string       `json:"name"`
	ParentGroup string       `json:"parentGroup"`
	Kind        MasterKind   `json:"kind"`
	Tax         *TaxMetadata `json:"taxMetadata,omitempty"`
	// Party detail, populated for PartyMaster requirements only.
	Address          string `json:"address,omitempty"`
	StateName        string `json:"stateName,omitempty"`
	GSTIN            string `json:"gstin,omitempty"`
	GSTRegistered    bool   `json:"gstRegistered,omitempty"`
	BillwiseTracking bool   `json:"billwiseTracking,omitempty"`
}

// LedgerSet is the set of ledger names known to exist in one company. The
// caller owns it: the analyzer only reads, the assembler adds the names it
// emits masters for so a batch creates each master at most once. It is not
// safe for concurrent mutation without external synchronization.
type LedgerSet map[string]struct{}

// NewLedgerSet builds a set from a name list.
func NewLedgerSet(names ...string) LedgerSet {
	s := make(LedgerSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is present.
func (s LedgerSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name into the set.
func (s LedgerSet) Add(name string) {
	s[name] = struct{}{}
}

// Clone returns an independent copy.
func (s LedgerSet) Clone() LedgerSet {
	c := make(LedgerSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}
