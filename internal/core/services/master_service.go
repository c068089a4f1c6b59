package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/gst"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/normalize"
	"github.com/autoledger-in/tallybridge/internal/utils/money"
)

// masterService derives the ledger masters a batch depends on. It holds no
// state beyond configuration; the caller supplies the set of known ledgers.
type masterService struct {
	homeStateCode string
}

// NewMasterService creates the master requirement analyzer.
func NewMasterService(homeStateCode string) portssvc.MasterAnalyzerSvc {
	return &masterService{homeStateCode: homeStateCode}
}

var _ portssvc.MasterAnalyzerSvc = (*masterService)(nil)

// kindOrder fixes the emission order so masters import before the vouchers
// that reference them and output stays diffable across runs.
var kindOrder = map[models.MasterKind]int{
	models.PartyMaster:     0,
	models.RevenueMaster:   1,
	models.TaxDutyMaster:   2,
	models.RoundOffMaster:  3,
	models.BankMaster:      4,
	models.StockItemMaster: 5,
}

func (s *masterService) AnalyzeRecords(ctx context.Context, records []models.TransactionRecord, existing models.LedgerSet) ([]models.MasterRequirement, []string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	seen := models.NewLedgerSet()
	var reqs []models.MasterRequirement
	var diagnostics []string
	needRoundOff := false

	add := func(req models.MasterRequirement) {
		if existing.Has(req.Name) || seen.Has(req.Name) {
			return
		}
		seen.Add(req.Name)
		reqs = append(reqs, req)
	}

	for _, rec := range records {
		partyName := normalize.SanitizeName(rec.PartyName)
		if partyName == normalize.FallbackName && rec.PartyName == "" {
			diagnostics = append(diagnostics,
				fmt.Sprintf("document %q: missing party name, using %q", rec.DocumentRef, normalize.FallbackName))
		}
		gstin := gst.Normalize(rec.PartyTaxID)
		registered := gst.IsValidGSTIN(gstin)
		if !registered {
			gstin = ""
		}
		stateName := gst.StateName(rec.PartyTaxID)
		if stateName == "" {
			stateName = rec.PlaceOfSupply
		}
		add(models.MasterRequirement{
			Name:             partyName,
			ParentGroup:      partyGroup(rec.Direction),
			Kind:             models.PartyMaster,
			Address:          rec.PartyAddress,
			StateName:        stateName,
			GSTIN:            gstin,
			GSTRegistered:    registered,
			BillwiseTracking: true,
		})

		plan := planRecord(rec, s.homeStateCode)
		diagnostics = append(diagnostics, plan.diagnostics...)
		for _, lp := range plan.lines {
			rate := lp.rate
			add(models.MasterRequirement{
				Name:        lp.ledgerName,
				ParentGroup: revenueGroup(rec.Direction),
				Kind:        models.RevenueMaster,
				Tax:         &models.TaxMetadata{Rate: rate},
			})
			for _, tx := range lp.taxes {
				tax := tx
				add(models.MasterRequirement{
					Name:        tax.ledgerName,
					ParentGroup: models.GroupDutiesAndTaxes,
					Kind:        models.TaxDutyMaster,
					Tax:         &models.TaxMetadata{DutyHead: tax.head, Rate: tax.rate},
				})
			}
		}
		if recordNeedsRoundOff(rec, plan) {
			needRoundOff = true
		}
	}
	if needRoundOff {
		add(models.MasterRequirement{
			Name:        models.RoundOffLedgerName,
			ParentGroup: models.GroupIndirectExpenses,
			Kind:        models.RoundOffMaster,
		})
	}

	sortRequirements(reqs)
	logger.Debug("Master analysis complete",
		slog.Int("records", len(records)),
		slog.Int("requirements", len(reqs)),
	)
	return reqs, diagnostics
}

func (s *masterService) AnalyzeBank(ctx context.Context, stmt models.BankStatement, existing models.LedgerSet) []models.MasterRequirement {
	seen := models.NewLedgerSet()
	var reqs []models.MasterRequirement
	add := func(req models.MasterRequirement) {
		if existing.Has(req.Name) || seen.Has(req.Name) {
			return
		}
		seen.Add(req.Name)
		reqs = append(reqs, req)
	}

	bankName := normalize.SanitizeName(stmt.BankLedgerName)
	add(models.MasterRequirement{
		Name:        bankName,
		ParentGroup: models.GroupBankAccounts,
		Kind:        models.BankMaster,
	})
	for _, t := range stmt.Transactions {
		contra := models.SuspenseLedgerName
		if t.ContraLedger != "" {
			contra = normalize.SanitizeName(t.ContraLedger)
		}
		add(models.MasterRequirement{
			Name:        contra,
			ParentGroup: models.GroupIndirectExpenses,
			Kind:        models.RevenueMaster,
		})
	}
	sortRequirements(reqs)
	return reqs
}

// recordNeedsRoundOff reports whether the voucher total carries paise that
// whole-unit rounding will move to the adjustment ledger.
func recordNeedsRoundOff(rec models.TransactionRecord, plan recordPlan) bool {
	if rec.RoundOff != nil {
		return !rec.RoundOff.IsZero()
	}
	actual := plan.actualTotal()
	return !money.RoundWhole(actual).Equal(actual)
}

func sortRequirements(reqs []models.MasterRequirement) {
	sort.SliceStable(reqs, func(i, j int) bool {
		if kindOrder[reqs[i].Kind] != kindOrder[reqs[j].Kind] {
			return kindOrder[reqs[i].Kind] < kindOrder[reqs[j].Kind]
		}
		return reqs[i].Name < reqs[j].Name
	})
}
