package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/autoledger-in/tallybridge/internal/apperrors"
	portsrepo "github.com/autoledger-in/tallybridge/internal/core/ports/repositories"
	portssvc "github.com/autoledger-in/tallybridge/internal/core/ports/services"
	"github.com/autoledger-in/tallybridge/internal/dto"
	"github.com/autoledger-in/tallybridge/internal/middleware"
	"github.com/autoledger-in/tallybridge/internal/models"
	"github.com/autoledger-in/tallybridge/internal/tallyxml"
)

// importService drives the full pipeline: analyze masters, assemble
// vouchers, render the envelope, push to Tally and record the attempt.
type importService struct {
	tally     portssvc.TallyClientSvc
	masters   portssvc.MasterAnalyzerSvc
	vouchers  portssvc.VoucherAssemblerSvc
	cache     portssvc.LedgerCacheSvc
	logRepo   portsrepo.ImportLogRepository
	batchSize int
}

// NewImportService creates the import orchestrator. batchSize bounds how
// many vouchers travel in one request to Tally.
func NewImportService(
	tally portssvc.TallyClientSvc,
	masters portssvc.MasterAnalyzerSvc,
	vouchers portssvc.VoucherAssemblerSvc,
	cache portssvc.LedgerCacheSvc,
	logRepo portsrepo.ImportLogRepository,
	batchSize int,
) portssvc.ImporterSvc {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &importService{
		tally:     tally,
		masters:   masters,
		vouchers:  vouchers,
		cache:     cache,
		logRepo:   logRepo,
		batchSize: batchSize,
	}
}

var _ portssvc.ImporterSvc = (*importService)(nil)

// knownLedgers consults the cache, degrading to an empty set when Tally is
// unreachable so generation can still produce a complete envelope.
func (s *importService) knownLedgers(ctx context.Context, company string) (models.LedgerSet, []string) {
	existing, err := s.cache.Known(ctx, company)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Ledger cache unavailable, emitting all masters",
			slog.String("company", company),
			slog.String("error", err.Error()),
		)
		return models.NewLedgerSet(), []string{
			"ledger list unavailable, masters emitted for every referenced ledger",
		}
	}
	return existing, nil
}

// buildRecords renders one envelope for a record batch against a known
// ledger set and reports which master names it emitted.
func (s *importService) buildRecords(ctx context.Context, company string, recs []models.TransactionRecord, invoice bool, existing models.LedgerSet) (*dto.GenerateResponse, []string, error) {
	reqs, diagnostics := s.masters.AnalyzeRecords(ctx, recs, existing)

	var payloads []models.VoucherPayload
	var err error
	if invoice && len(recs) == 1 {
		var payload models.VoucherPayload
		var diags []string
		payload, diags, err = s.vouchers.AssembleInvoice(ctx, recs[0])
		diagnostics = append(diagnostics, diags...)
		payloads = []models.VoucherPayload{payload}
	} else {
		var diags []string
		payloads, diags, err = s.vouchers.AssembleBulk(ctx, recs)
		diagnostics = append(diagnostics, diags...)
	}
	if err != nil {
		return nil, nil, err
	}

	masterMsgs := make([]*tallyxml.Element, 0, len(reqs))
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		masterMsgs = append(masterMsgs, tallyxml.BuildLedgerMaster(req))
		names = append(names, req.Name)
	}

	style := tallyxml.AccountingStyle
	if invoice {
		style = tallyxml.InvoiceStyle
		masterMsgs = append(masterMsgs, s.stockMasters(payloads)...)
	}
	voucherMsgs := make([]*tallyxml.Element, 0, len(payloads))
	for _, p := range payloads {
		voucherMsgs = append(voucherMsgs, tallyxml.BuildVoucher(p, style))
	}

	envelope := tallyxml.ImportEnvelope(company, masterMsgs, voucherMsgs)
	return &dto.GenerateResponse{
		XML:         envelope.Render(),
		Vouchers:    payloads,
		Masters:     reqs,
		Diagnostics: diagnostics,
	}, names, nil
}

// stockMasters emits the unit plus one stock item per distinct inventory
// name. Stock items live in their own namespace, so the ledger set cannot
// vouch for them; Alter keeps re-sends harmless.
func (s *importService) stockMasters(payloads []models.VoucherPayload) []*tallyxml.Element {
	seen := map[string]struct{}{}
	var msgs []*tallyxml.Element
	for _, p := range payloads {
		for _, inv := range p.Inventory {
			if _, ok := seen[inv.StockItemName]; ok {
				continue
			}
			seen[inv.StockItemName] = struct{}{}
			if len(msgs) == 0 {
				msgs = append(msgs, tallyxml.BuildUnitMaster())
			}
			msgs = append(msgs, tallyxml.BuildStockItemMaster(inv.StockItemName, inv.TaxRate))
		}
	}
	return msgs
}

func (s *importService) BuildRecordsXML(ctx context.Context, company string, recs []models.TransactionRecord, invoice bool) (*dto.GenerateResponse, error) {
	existing, diags := s.knownLedgers(ctx, company)
	resp, _, err := s.buildRecords(ctx, company, recs, invoice, existing)
	if err != nil {
		return nil, err
	}
	resp.Diagnostics = append(diags, resp.Diagnostics...)
	return resp, nil
}

func (s *importService) BuildBankXML(ctx context.Context, company string, stmt models.BankStatement) (*dto.GenerateResponse, error) {
	existing, diags := s.knownLedgers(ctx, company)
	resp, _, err := s.buildBank(ctx, company, stmt, existing)
	if err != nil {
		return nil, err
	}
	resp.Diagnostics = append(diags, resp.Diagnostics...)
	return resp, nil
}

func (s *importService) buildBank(ctx context.Context, company string, stmt models.BankStatement, existing models.LedgerSet) (*dto.GenerateResponse, []string, error) {
	reqs := s.masters.AnalyzeBank(ctx, stmt, existing)
	payloads, diagnostics, err := s.vouchers.AssembleBank(ctx, stmt)
	if err != nil {
		return nil, nil, err
	}

	masterMsgs := make([]*tallyxml.Element, 0, len(reqs))
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		masterMsgs = append(masterMsgs, tallyxml.BuildLedgerMaster(req))
		names = append(names, req.Name)
	}
	voucherMsgs := make([]*tallyxml.Element, 0, len(payloads))
	for _, p := range payloads {
		voucherMsgs = append(voucherMsgs, tallyxml.BuildVoucher(p, tallyxml.BankStyle))
	}

	envelope := tallyxml.ImportEnvelope(company, masterMsgs, voucherMsgs)
	return &dto.GenerateResponse{
		XML:         envelope.Render(),
		Vouchers:    payloads,
		Masters:     reqs,
		Diagnostics: diagnostics,
	}, names, nil
}

func (s *importService) ImportRecords(ctx context.Context, company string, kind models.ImportKind, recs []models.TransactionRecord, invoice bool) (*dto.ImportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	existing, diags := s.knownLedgers(ctx, company)
	existing = existing.Clone()

	var combined models.ImportResult
	var diagnostics []string
	diagnostics = append(diagnostics, diags...)
	pushed := 0

	for start := 0; start < len(recs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(recs) {
			end = len(recs)
		}
		resp, names, err := s.buildRecords(ctx, company, recs[start:end], invoice, existing)
		if err != nil {
			s.record(ctx, company, kind, pushed, models.ImportFailed, err.Error(), "")
			return nil, err
		}
		diagnostics = append(diagnostics, resp.Diagnostics...)

		result, err := s.tally.Import(ctx, resp.XML)
		if err != nil {
			s.record(ctx, company, kind, pushed, models.ImportFailed, err.Error(), "")
			return nil, apperrors.NewAppError(502, "tally import failed", err)
		}
		mergeResult(&combined, result)
		pushed += len(resp.Vouchers)

		// Masters sent in this chunk now exist; later chunks and later
		// requests must not re-emit them.
		for _, n := range names {
			existing.Add(n)
		}
		s.cache.MarkCreated(company, names...)
	}

	status := models.ImportSucceeded
	message := fmt.Sprintf("%d vouchers imported", pushed)
	if combined.Failed() {
		status = models.ImportFailed
		message = fmt.Sprintf("tally reported %d errors", combined.Errors)
	}
	logID := s.record(ctx, company, kind, pushed, status, message, strings.Join(combined.LineErrors, "; "))

	logger.Info("Import finished",
		slog.String("kind", string(kind)),
		slog.Int("vouchers", pushed),
		slog.String("status", string(status)),
	)
	if combined.Failed() {
		return &dto.ImportResponse{Result: combined, Status: status, LogID: logID, Diagnostics: diagnostics},
			apperrors.NewAppError(422, message, apperrors.ErrTallyRejected)
	}
	return &dto.ImportResponse{Result: combined, Status: status, LogID: logID, Diagnostics: diagnostics}, nil
}

func (s *importService) ImportBank(ctx context.Context, company string, stmt models.BankStatement) (*dto.ImportResponse, error) {
	existing, diags := s.knownLedgers(ctx, company)
	resp, names, err := s.buildBank(ctx, company, stmt, existing)
	if err != nil {
		s.record(ctx, company, models.BankImport, 0, models.ImportFailed, err.Error(), "")
		return nil, err
	}

	result, err := s.tally.Import(ctx, resp.XML)
	if err != nil {
		s.record(ctx, company, models.BankImport, 0, models.ImportFailed, err.Error(), "")
		return nil, apperrors.NewAppError(502, "tally import failed", err)
	}
	s.cache.MarkCreated(company, names...)

	status := models.ImportSucceeded
	message := fmt.Sprintf("%d vouchers imported", len(resp.Vouchers))
	if result.Failed() {
		status = models.ImportFailed
		message = fmt.Sprintf("tally reported %d errors", result.Errors)
	}
	logID := s.record(ctx, company, models.BankImport, len(resp.Vouchers), status, message, strings.Join(result.LineErrors, "; "))

	out := &dto.ImportResponse{
		Result:      result,
		Status:      status,
		LogID:       logID,
		Diagnostics: append(diags, resp.Diagnostics...),
	}
	if result.Failed() {
		return out, apperrors.NewAppError(422, message, apperrors.ErrTallyRejected)
	}
	return out, nil
}

// record writes one audit row. Audit failures are logged, never propagated;
// the import outcome matters more than the trail.
func (s *importService) record(ctx context.Context, company string, kind models.ImportKind, count int, status models.ImportStatus, message, snippet string) string {
	if s.logRepo == nil {
		return ""
	}
	log := &models.ImportLog{
		ImportLogID:     uuid.NewString(),
		Company:         company,
		Kind:            kind,
		VoucherCount:    count,
		Status:          status,
		Message:         message,
		ResponseSnippet: snippet,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write import log",
			slog.String("error", err.Error()),
		)
		return ""
	}
	return log.ImportLogID
}

func mergeResult(into *models.ImportResult, add models.ImportResult) {
	into.Created += add.Created
	into.Altered += add.Altered
	into.Errors += add.Errors
	into.LineErrors = append(into.LineErrors, add.LineErrors...)
	if add.LastVoucher != "" {
		into.LastVoucher = add.LastVoucher
	}
}
