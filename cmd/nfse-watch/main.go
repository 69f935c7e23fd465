package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/financeiro-script/nfse-validator/internal/audit"
	"github.com/financeiro-script/nfse-validator/internal/common"
	"github.com/financeiro-script/nfse-validator/internal/extract"
	"github.com/financeiro-script/nfse-validator/internal/ingest"
	"github.com/financeiro-script/nfse-validator/internal/pdftext"
	"github.com/financeiro-script/nfse-validator/internal/pipeline"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	// Env
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.ResultDir, 0o755); err != nil {
		log.Fatalf("creating result directory: %v", err)
	}
	specTable, err := extract.LoadSpecs(cfg.Extract.SpecOverrides)
	if err != nil {
		log.Fatalf("loading field specs: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.InvoicesDir, 0o755); err != nil {
		log.Fatalf("creating invoices directory: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := pipeline.New(
		pipeline.Config{
			InvoicesDir: cfg.Paths.InvoicesDir,
			LedgerPath:  cfg.Ledger.Path,
			ValidDir:    cfg.Paths.ValidDir,
			InvalidDir:  cfg.Paths.InvalidDir,
			ReportPath:  filepath.Join(cfg.Paths.ResultDir, "resultado.xlsx"),
		},
		pdftext.NewExtractor(pdftext.Config{
			Pdftotext: cfg.Extract.Pdftotext,
			Timeout:   cfg.Extract.Timeout,
		}),
		extract.NewFieldExtractor(specTable, nil),
		audit.New(filepath.Join(cfg.Paths.ResultDir, "Log.txt")),
		nil,
	)

	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Root:        cfg.Paths.InvoicesDir,
		InitialScan: cfg.Watch.InitialScan,
		Debounce:    cfg.Watch.Debounce,
	})
	if err != nil {
		log.Fatalf("starting watcher: %v", err)
	}
	log.Infow("watching invoices directory", "dir", cfg.Paths.InvoicesDir)

	// Each burst of new documents triggers one full batch run. Sources are
	// copied rather than consumed, so a rerun revalidates earlier documents
	// and overwrites their routed copies with identical results.
	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down...")
			return
		case err, ok := <-watchErrs:
			if !ok {
				return
			}
			log.Errorw("watcher error", "error", err)
		case path, ok := <-events:
			if !ok {
				return
			}
			log.Infow("document detected", "file", filepath.Base(path))
			drain(events)
			stats, err := p.Run(ctx)
			if err != nil {
				log.Errorw("batch failed", "error", err)
				continue
			}
			log.Infow("batch finished",
				"processed", stats.Processed, "valid", stats.Valid,
				"invalid", stats.Invalid, "failed", stats.Failed)
		}
	}
}

// drain consumes whatever else the debounce window already queued so one
// batch covers the whole burst.
func drain(events <-chan string) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
