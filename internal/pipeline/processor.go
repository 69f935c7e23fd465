// Package pipeline wires extraction, reconciliation and routing into the
// sequential per-document validation loop.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/financeiro-script/nfse-validator/internal/audit"
	"github.com/financeiro-script/nfse-validator/internal/extract"
	"github.com/financeiro-script/nfse-validator/internal/ingest"
	"github.com/financeiro-script/nfse-validator/internal/ledger"
	"github.com/financeiro-script/nfse-validator/internal/reconcile"
	"github.com/financeiro-script/nfse-validator/internal/report"
	"github.com/financeiro-script/nfse-validator/internal/router"
)

type Config struct {
	InvoicesDir string
	LedgerPath  string
	ValidDir    string
	InvalidDir  string
	ReportPath  string // optional, skipped when empty
}

// Stats aggregates one batch run.
type Stats struct {
	Processed uint32
	Valid     uint32
	Invalid   uint32
	Failed    uint32
}

type Processor struct {
	cfg    Config
	text   extract.TextExtractor
	fields *extract.FieldExtractor
	router *router.Router
	audit  *audit.Logger
	log    *slog.Logger
}

func New(cfg Config, text extract.TextExtractor, fields *extract.FieldExtractor, auditLog *audit.Logger, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		cfg:    cfg,
		text:   text,
		fields: fields,
		router: router.New(log),
		audit:  auditLog,
		log:    log,
	}
}

// Run executes one batch: list documents, load the ledger once, then
// extract, reconcile and route each document in order. Batch setup failures
// (unreadable ledger, missing required columns) abort the run; per-document
// failures are logged and the loop continues.
func (p *Processor) Run(ctx context.Context) (Stats, error) {
	batchID := uuid.New()
	log := p.log.With("batch_id", batchID)

	files, err := ingest.ListInvoices(p.cfg.InvoicesDir, log)
	if err != nil {
		return Stats{}, fmt.Errorf("list invoices: %w", err)
	}
	if len(files) == 0 {
		log.Info("nothing to process, batch skipped", "dir", p.cfg.InvoicesDir)
		return Stats{}, nil
	}

	rows, err := ledger.ReadRows(p.cfg.LedgerPath)
	if err != nil {
		return Stats{}, err
	}
	index, err := ledger.BuildIndex(rows, reconcile.RequiredColumns)
	if err != nil {
		return Stats{}, err
	}
	engine := reconcile.NewEngine(index, ledger.DataRows(rows), log)

	for _, dir := range []string{p.cfg.ValidDir, p.cfg.InvalidDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Stats{}, fmt.Errorf("create destination dir %q: %w", dir, err)
		}
	}

	var stats Stats
	entries := make([]report.Entry, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		entry := p.processDocument(ctx, file, engine, log)
		entries = append(entries, entry)

		stats.Processed++
		switch entry.Status {
		case "valid":
			stats.Valid++
		case "invalid":
			stats.Invalid++
		default:
			stats.Failed++
		}
	}

	if p.cfg.ReportPath != "" {
		if err := report.Write(p.cfg.ReportPath, entries); err != nil {
			log.Error("failed to write results report", "path", p.cfg.ReportPath, "error", err)
		}
	}

	summary := fmt.Sprintf("batch finished: processed=%d valid=%d invalid=%d failed=%d",
		stats.Processed, stats.Valid, stats.Invalid, stats.Failed)
	if err := p.audit.Info(summary); err != nil {
		log.Error("failed to append audit line", "error", err)
	}
	log.Info("batch finished",
		"processed", stats.Processed, "valid", stats.Valid,
		"invalid", stats.Invalid, "failed", stats.Failed)
	return stats, nil
}

// processDocument handles one file end to end. Every failure is contained
// here: the document is logged and the batch moves on.
func (p *Processor) processDocument(ctx context.Context, file string, engine *reconcile.Engine, log *slog.Logger) report.Entry {
	base := filepath.Base(file)

	res, err := p.text.Extract(ctx, file)
	if err != nil {
		return p.failDocument(file, err, log)
	}

	rec := p.fields.ExtractInvoice(res.Text)
	verdict := engine.Reconcile(rec)

	finalPath, err := p.router.Route(file, rec, verdict.Valid, p.cfg.ValidDir, p.cfg.InvalidDir)
	if err != nil {
		return p.failDocument(file, err, log)
	}
	finalBase := filepath.Base(finalPath)

	status := "invalid"
	msg := fmt.Sprintf("NFSe invalid: %s - Reason: %s", finalBase, verdict.Reason.Describe())
	if verdict.Valid {
		status = "valid"
		msg = fmt.Sprintf("NFSe valid: %s", finalBase)
	}
	if err := p.audit.Info(msg); err != nil {
		log.Error("failed to append audit line", "error", err)
	}
	log.Info("document routed",
		"file", base, "routed_as", finalBase, "status", status,
		"pages", res.Pages, "extract_ms", res.Duration.Milliseconds())

	entry := report.Entry{
		File:      finalBase,
		Status:    status,
		CNPJ:      rec.Issuer.CNPJ,
		Number:    rec.Number,
		Period:    rec.CompetencyDate,
		Value:     rec.ServiceValue,
		LegalName: rec.Issuer.LegalName,
	}
	if !verdict.Valid {
		entry.Reason = verdict.Reason.Describe()
	}
	return entry
}

func (p *Processor) failDocument(file string, err error, log *slog.Logger) report.Entry {
	base := filepath.Base(file)
	auditCtx := fmt.Sprintf("processing %s", base)
	if auditErr := p.audit.LogError(err, auditCtx); auditErr != nil {
		log.Error("failed to append audit error entry", "error", auditErr)
	}
	log.Error("document processing failed", "file", base, "error", err)

	entry := report.Entry{
		File:   base,
		Status: "error",
		Reason: strings.TrimSpace(err.Error()),
	}
	// best effort: park the document in the invalid bucket so every file
	// still reaches a terminal location
	if finalPath, routeErr := p.router.Route(file, &extract.InvoiceRecord{}, false, p.cfg.ValidDir, p.cfg.InvalidDir); routeErr == nil {
		entry.File = filepath.Base(finalPath)
	}
	return entry
}
