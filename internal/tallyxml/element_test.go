package tallyxml_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/tallyxml"
)

func TestRenderNested(t *testing.T) {
	e := tallyxml.NewElement("HEADER").
		AddText("TALLYREQUEST", "Import Data")
	assert.Equal(t, "<HEADER><TALLYREQUEST>Import Data</TALLYREQUEST></HEADER>", e.Render())
}

func TestRenderAttributes(t *testing.T) {
	e := tallyxml.NewElement("LEDGER").
		WithAttr("NAME", "Round Off").
		WithAttr("ACTION", "Alter")
	assert.Equal(t, `<LEDGER NAME="Round Off" ACTION="Alter"></LEDGER>`, e.Render())
}

func TestRenderEscapesText(t *testing.T) {
	e := tallyxml.Text("NAME", `Sharma & Sons <"P" Ltd's>`)
	assert.Equal(t, "<NAME>Sharma &amp; Sons &lt;&quot;P&quot; Ltd&apos;s&gt;</NAME>", e.Render())
}

func TestRenderEscapesAttributes(t *testing.T) {
	e := tallyxml.NewElement("LEDGER").WithAttr("NAME", `A&B "Traders"`)
	assert.Equal(t, `<LEDGER NAME="A&amp;B &quot;Traders&quot;"></LEDGER>`, e.Render())
}

func TestAddSkipsNil(t *testing.T) {
	e := tallyxml.NewElement("PARENT").Add(nil, tallyxml.Text("CHILD", "x"), nil)
	assert.Equal(t, "<PARENT><CHILD>x</CHILD></PARENT>", e.Render())
}

func TestImportEnvelopeShape(t *testing.T) {
	env := tallyxml.ImportEnvelope("", nil, nil).Render()
	assert.Contains(t, env, "<TALLYREQUEST>Import Data</TALLYREQUEST>")
	assert.Contains(t, env, "<REPORTNAME>All Masters</REPORTNAME>")
	assert.Contains(t, env, "<REPORTNAME>Vouchers</REPORTNAME>")
	assert.Contains(t, env, "<SVCURRENTCOMPANY>##SVCurrentCompany</SVCURRENTCOMPANY>")
}

func TestImportEnvelopeNamedCompany(t *testing.T) {
	env := tallyxml.ImportEnvelope("Acme Traders", nil, nil).Render()
	assert.Contains(t, env, "<SVCURRENTCOMPANY>Acme Traders</SVCURRENTCOMPANY>")
	assert.NotContains(t, env, "##SVCurrentCompany")
}

func TestBuildVoucherWireSigns(t *testing.T) {
	// Model amounts are debit-positive; the wire flips the sign and pairs
	// it with ISDEEMEDPOSITIVE.
	payload := models.VoucherPayload{
		Type:            models.Sale,
		Date:            "20240415",
		Number:          "INV-1",
		PartyLedgerName: "Acme",
		PartyAmount:     decimal.RequireFromString("106200"),
		LineEntries: []models.LedgerEntry{
			{LedgerName: "Sale 18%", Amount: decimal.RequireFromString("-90000")},
			{LedgerName: "Output IGST 18%", Amount: decimal.RequireFromString("-16200")},
		},
	}
	out := tallyxml.BuildVoucher(payload, tallyxml.AccountingStyle).Render()

	assert.Contains(t, out, "<LEDGERNAME>Acme</LEDGERNAME><ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE><AMOUNT>-106200.00</AMOUNT>")
	assert.Contains(t, out, "<LEDGERNAME>Sale 18%</LEDGERNAME><ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE><AMOUNT>90000.00</AMOUNT>")
	assert.Contains(t, out, "<LEDGERNAME>Output IGST 18%</LEDGERNAME><ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE><AMOUNT>16200.00</AMOUNT>")
	assert.Contains(t, out, `VCHTYPE="Sales"`)
	assert.Contains(t, out, "<BILLTYPE>New Ref</BILLTYPE>")
}

func TestBuildVoucherBankStyle(t *testing.T) {
	payload := models.VoucherPayload{
		Type:            models.Payment,
		Date:            "20240415",
		PartyLedgerName: "HDFC Bank",
		PartyAmount:     decimal.RequireFromString("-500"),
		LineEntries: []models.LedgerEntry{
			{LedgerName: "Office Rent", Amount: decimal.RequireFromString("500")},
		},
	}
	out := tallyxml.BuildVoucher(payload, tallyxml.BankStyle).Render()

	assert.Contains(t, out, "<LEDGERNAME>HDFC Bank</LEDGERNAME><ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE><AMOUNT>500.00</AMOUNT>")
	assert.Contains(t, out, "<LEDGERNAME>Office Rent</LEDGERNAME><ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE><AMOUNT>-500.00</AMOUNT>")
	assert.NotContains(t, out, "ISINVOICE")
	assert.NotContains(t, out, "BILLALLOCATIONS")
}

func TestBuildLedgerMasterParty(t *testing.T) {
	req := models.MasterRequirement{
		Name:             "Acme",
		ParentGroup:      models.GroupSundryDebtors,
		Kind:             models.PartyMaster,
		StateName:        "Karnataka",
		GSTIN:            "29AABCU9603R1ZM",
		GSTRegistered:    true,
		BillwiseTracking: true,
	}
	out := tallyxml.BuildLedgerMaster(req).Render()

	assert.Contains(t, out, `<LEDGER NAME="Acme" ACTION="Alter">`)
	assert.Contains(t, out, "<PARENT>Sundry Debtors</PARENT>")
	assert.Contains(t, out, "<ISBILLWISEON>Yes</ISBILLWISEON>")
	assert.Contains(t, out, "<PARTYGSTIN>29AABCU9603R1ZM</PARTYGSTIN>")
	assert.Contains(t, out, "<GSTREGISTRATIONTYPE>Regular</GSTREGISTRATIONTYPE>")
	assert.Contains(t, out, "<LEDGERSTATENAME>Karnataka</LEDGERSTATENAME>")
}

func TestBuildLedgerMasterTaxDuty(t *testing.T) {
	rate := decimal.NewFromInt(9)
	req := models.MasterRequirement{
		Name:        "Output CGST 9%",
		ParentGroup: models.GroupDutiesAndTaxes,
		Kind:        models.TaxDutyMaster,
		Tax:         &models.TaxMetadata{DutyHead: models.CentralTax, Rate: rate},
	}
	out := tallyxml.BuildLedgerMaster(req).Render()

	assert.Contains(t, out, "<TAXTYPE>GST</TAXTYPE>")
	assert.Contains(t, out, "<GSTDUTYHEAD>Central Tax</GSTDUTYHEAD>")
	assert.Contains(t, out, "<GSTRATE>9</GSTRATE>")
}

func TestLedgerExportRequest(t *testing.T) {
	out := tallyxml.LedgerExportRequest("").Render()
	assert.Contains(t, out, "<TALLYREQUEST>Export Data</TALLYREQUEST>")
	assert.Contains(t, out, "<REPORTNAME>List of Accounts</REPORTNAME>")
	assert.Contains(t, out, "<ACCOUNTTYPE>Ledgers</ACCOUNTTYPE>")
	assert.NotContains(t, out, "SVCURRENTCOMPANY")
}
