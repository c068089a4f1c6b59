package tallyxml

// CurrentCompanySentinel targets whichever company is active in Tally when
// the caller does not name one.
const CurrentCompanySentinel = "##SVCurrentCompany"

const tallyUDFNamespace = "TallyUDF"

// companyOrSentinel maps an empty company name to the active-company
// sentinel.
func companyOrSentinel(company string) string {
	if company == "" {
		return CurrentCompanySentinel
	}
	return company
}

// Message wraps a master or voucher element in the TALLYMESSAGE envelope
// Tally expects inside REQUESTDATA.
func Message(body *Element) *Element {
	return NewElement("TALLYMESSAGE").
		WithAttr("xmlns:UDF", tallyUDFNamespace).
		Add(body)
}

// ImportEnvelope builds the full import request: one IMPORTDATA section for
// master creation and one for vouchers, each scoped to the target company.
// Either message list may be empty; the section is still emitted so the
// response shape stays uniform.
func ImportEnvelope(company string, masters, vouchers []*Element) *Element {
	return NewElement("ENVELOPE").
		Add(
			NewElement("HEADER").AddText("TALLYREQUEST", "Import Data"),
			NewElement("BODY").
				Add(
					importSection("All Masters", company, masters),
					importSection("Vouchers", company, vouchers),
				),
		)
}

func importSection(reportName, company string, messages []*Element) *Element {
	data := NewElement("REQUESTDATA")
	for _, m := range messages {
		data.Add(m)
	}
	return NewElement("IMPORTDATA").
		Add(
			NewElement("REQUESTDESC").
				AddText("REPORTNAME", reportName).
				Add(NewElement("STATICVARIABLES").
					AddText("SVCURRENTCOMPANY", companyOrSentinel(company))),
			data,
		)
}

// LedgerExportRequest builds the "List of Accounts" export used to learn
// which ledgers already exist in a company.
func LedgerExportRequest(company string) *Element {
	static := NewElement("STATICVARIABLES").
		AddText("SVEXPORTFORMAT", "$$SysName:XML").
		AddText("ACCOUNTTYPE", "Ledgers")
	if company != "" {
		static.AddText("SVCURRENTCOMPANY", company)
	}
	return NewElement("ENVELOPE").
		Add(
			NewElement("HEADER").AddText("TALLYREQUEST", "Export Data"),
			NewElement("BODY").
				Add(NewElement("EXPORTDATA").
					Add(NewElement("REQUESTDESC").
						AddText("REPORTNAME", "List of Accounts").
						Add(static))),
		)
}
