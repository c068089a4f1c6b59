// Package xlsx reads flat voucher rows out of uploaded workbooks. Header
// matching is tolerant: accountants rename columns freely, so each field
// accepts several spellings and the reader reports what it could not place.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/autoledger-in/tallybridge/internal/models"
)

// headerAliases maps a canonical field to the header spellings that select
// it. Matching is case-insensitive on the trimmed header text.
var headerAliases = map[string][]string{
	"date":          {"date", "invoice date", "voucher date", "bill date"},
	"invoiceNo":     {"invoice no", "invoice no.", "invoice number", "voucher no", "voucher no.", "bill no", "bill no.", "inv no"},
	"partyName":     {"party", "party name", "customer", "customer name", "supplier", "supplier name", "buyer"},
	"gstin":         {"gstin", "gstin/uin", "gst no", "party gstin"},
	"address":       {"address", "party address", "billing address"},
	"placeOfSupply": {"place of supply", "pos", "state"},
	"direction":     {"type", "voucher type", "transaction type"},
	"amount":        {"taxable value", "taxable amount", "amount", "basic amount", "net amount"},
	"taxRate":       {"rate", "gst rate", "tax rate", "rate %", "gst %"},
	"totalAmount":   {"total", "total amount", "invoice value", "invoice amount", "gross amount"},
	"igst":          {"igst", "igst amount"},
	"cgst":          {"cgst", "cgst amount"},
	"sgst":          {"sgst", "sgst amount", "sgst/utgst"},
	"cess":          {"cess", "cess amount"},
	"ledgerName":    {"ledger", "ledger name", "sales ledger", "item", "particulars", "description"},
	"period":        {"period", "month", "return period"},
}

// Result is the outcome of reading one sheet.
type Result struct {
	Rows        []models.ExcelRow
	Skipped     int
	Diagnostics []string
}

// Read parses the first sheet of a workbook into flat rows. The first
// non-empty row is the header.
func Read(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (*Result, error) {
	res := &Result{}

	headerIdx := -1
	var columns map[string]int
	for i, row := range rows {
		if cols := matchHeader(row); cols != nil {
			headerIdx = i
			columns = cols
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("no recognizable header row found")
	}
	for _, field := range []string{"date", "partyName", "amount"} {
		if _, ok := columns[field]; !ok {
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("header has no %s column, values will default", field))
		}
	}

	for i, row := range rows[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}
		get := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		parsed := models.ExcelRow{
			Date:          normalizeCellDate(get("date")),
			InvoiceNo:     get("invoiceNo"),
			PartyName:     get("partyName"),
			GSTIN:         get("gstin"),
			Address:       get("address"),
			PlaceOfSupply: get("placeOfSupply"),
			Direction:     parseDirection(get("direction")),
			Amount:        parseAmount(get("amount")),
			TaxRate:       parseAmount(get("taxRate")),
			TotalAmount:   parseAmount(get("totalAmount")),
			IGST:          parseAmount(get("igst")),
			CGST:          parseAmount(get("cgst")),
			SGST:          parseAmount(get("sgst")),
			Cess:          parseAmount(get("cess")),
			LedgerName:    get("ledgerName"),
			Period:        get("period"),
		}
		if parsed.InvoiceNo == "" && parsed.PartyName == "" &&
			!parsed.Amount.IsPositive() && !parsed.TotalAmount.IsPositive() {
			res.Skipped++
			res.Diagnostics = append(res.Diagnostics,
				fmt.Sprintf("row %d: skipped, no invoice number, party or amount", headerIdx+i+2))
			continue
		}
		res.Rows = append(res.Rows, parsed)
	}
	return res, nil
}

// matchHeader maps canonical fields to column indexes when the row looks
// like a header, nil otherwise. At least two recognized columns qualify.
func matchHeader(row []string) map[string]int {
	columns := map[string]int{}
	for idx, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		for field, aliases := range headerAliases {
			if _, taken := columns[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					columns[field] = idx
					break
				}
			}
		}
	}
	if len(columns) < 2 {
		return nil
	}
	return columns
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// excelEpochOffset is the serial number of 1970-01-01 in Excel's 1900 date
// system.
const excelEpochOffset = 25569

// normalizeCellDate passes textual dates through and converts bare serial
// numbers into YYYY-MM-DD.
func normalizeCellDate(cell string) string {
	if cell == "" {
		return ""
	}
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil || serial < excelEpochOffset {
		return cell
	}
	days := int64(serial) - excelEpochOffset
	t := time.Unix(days*86400, 0).UTC()
	return t.Format("2006-01-02")
}

// parseAmount reads a numeric cell tolerantly: thousands separators,
// currency symbols and percent signs are stripped before parsing.
func parseAmount(cell string) decimal.Decimal {
	cleaned := strings.NewReplacer(",", "", "%", "", "₹", "", " ", "").Replace(cell)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDirection(cell string) models.Direction {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "purchase", "purchases", "buy":
		return models.Purchase
	case "payment":
		return models.Payment
	case "receipt":
		return models.Receipt
	case "contra":
		return models.Contra
	case "":
		return ""
	default:
		return models.Sale
	}
}
