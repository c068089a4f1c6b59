package tallyxml

import (
	"github.com/shopspring/decimal"

	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/normalize"
)

// Masters are always sent with ACTION="Alter": Tally treats Alter of a
// missing object as a create, so replays never fail with duplicate errors.
const masterAction = "Alter"

// BuildLedgerMaster renders one master requirement as a LEDGER message.
func BuildLedgerMaster(req models.MasterRequirement) *Element {
	ledger := NewElement("LEDGER").
		WithAttr("NAME", req.Name).
		WithAttr("ACTION", masterAction).
		Add(NewElement("NAME.LIST").AddText("NAME", req.Name)).
		AddText("PARENT", req.ParentGroup)

	switch req.Kind {
	case models.PartyMaster:
		ledger.AddText("ISBILLWISEON", yesNo(req.BillwiseTracking)).
			AddText("ISGSTAPPLICABLE", "Yes").
			Add(NewElement("ADDRESS.LIST").AddText("ADDRESS", req.Address)).
			AddText("COUNTRYOFRESIDENCE", "India").
			AddText("COUNTRYNAME", "India")
		if req.StateName != "" {
			ledger.AddText("LEDGERSTATENAME", req.StateName).
				AddText("STATENAME", req.StateName)
		}
		if req.GSTIN != "" {
			ledger.AddText("PARTYGSTIN", req.GSTIN)
		}
		if req.GSTRegistered {
			ledger.AddText("GSTREGISTRATIONTYPE", "Regular")
		} else {
			ledger.AddText("GSTREGISTRATIONTYPE", "Unregistered")
		}
	case models.RevenueMaster:
		if req.Tax != nil {
			ledger.AddText("ISGSTAPPLICABLE", "Yes").
				AddText("GSTRATE", normalize.FormatRate(req.Tax.Rate))
		} else {
			ledger.AddText("ISGSTAPPLICABLE", "No")
		}
	case models.TaxDutyMaster:
		ledger.AddText("TAXTYPE", "GST")
		if req.Tax != nil {
			ledger.AddText("GSTDUTYHEAD", string(req.Tax.DutyHead)).
				AddText("GSTRATE", normalize.FormatRate(req.Tax.Rate))
		}
	case models.RoundOffMaster, models.BankMaster:
		ledger.AddText("ISBILLWISEON", "No").
			AddText("ISGSTAPPLICABLE", "No")
	}
	return Message(ledger)
}

// BuildUnitMaster emits the simple "Nos" unit the stock items reference.
func BuildUnitMaster() *Element {
	return Message(NewElement("UNIT").
		WithAttr("NAME", "Nos").
		WithAttr("ACTION", masterAction).
		AddText("NAME", "Nos").
		AddText("ISSIMPLEUNIT", "Yes"))
}

// BuildGroupMaster ensures an account group exists before ledgers parent to
// it.
func BuildGroupMaster(name string) *Element {
	return Message(NewElement("GROUP").
		WithAttr("NAME", name).
		WithAttr("ACTION", masterAction).
		Add(NewElement("NAME.LIST").AddText("NAME", name)))
}

// BuildStockItemMaster emits a stock item for the invoice inventory path.
func BuildStockItemMaster(name string, rate decimal.Decimal) *Element {
	return Message(NewElement("STOCKITEM").
		WithAttr("NAME", name).
		WithAttr("ACTION", masterAction).
		Add(NewElement("NAME.LIST").AddText("NAME", name)).
		AddText("BASEUNITS", "Nos").
		AddText("OPENINGBALANCE", "0 Nos").
		AddText("ISGSTAPPLICABLE", "Yes").
		AddText("GSTRATE", normalize.FormatRate(rate)))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
