package models

import "github.com/shopspring/decimal"

// BankTransaction is one statement line mapped to a contra ledger.
type BankTransaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Withdrawal  decimal.Decimal `json:"withdrawal"`
	Deposit     decimal.Decimal `json:"deposit"`
	// ContraLedger is the ledger the movement books against. The mapping
	// layer resolves it; unresolved entries fall back to a suspense ledger.
	ContraLedger string    `json:"contraLedger"`
	Direction    Direction `json:"direction" binding:"omitempty,direction"` // Payment, Receipt or Contra
}

// Amount returns the moved value for the transaction's direction.
func (t BankTransaction) Amount() decimal.Decimal {
	if t.Direction == Payment {
		return t.Withdrawal
	}
	return t.Deposit
}

// BankStatement is a parsed statement for one bank ledger.
type BankStatement struct {
	BankLedgerName string            `json:"bankLedgerName"`
	AccountNumber  string            `json:"accountNumber,omitempty"`
	Transactions   []BankTransaction `json:"transactions"`
}

// SuspenseLedgerName receives movements whose contra ledger could not be
// mapped; the voucher still has to reference something that exists.
const SuspenseLedgerName = "Suspense A/c"
