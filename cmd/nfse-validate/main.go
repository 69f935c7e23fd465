package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/financeiro-script/nfse-validator/internal/audit"
	"github.com/financeiro-script/nfse-validator/internal/common"
	"github.com/financeiro-script/nfse-validator/internal/extract"
	"github.com/financeiro-script/nfse-validator/internal/pdftext"
	"github.com/financeiro-script/nfse-validator/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	// Parse CLI flags (override environment)
	var (
		dir     = flag.String("dir", cfg.Paths.InvoicesDir, "directory holding NFSe PDFs")
		ledger  = flag.String("ledger", cfg.Ledger.Path, "validation spreadsheet (.xls or .xlsx)")
		result  = flag.String("result", cfg.Paths.ResultDir, "directory for audit log and report")
		valid   = flag.String("valid", cfg.Paths.ValidDir, "destination for valid documents")
		invalid = flag.String("invalid", cfg.Paths.InvalidDir, "destination for invalid documents")
		specs   = flag.String("specs", cfg.Extract.SpecOverrides, "optional field-spec override file (JSON)")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	cfg.Paths.InvoicesDir = *dir
	cfg.Ledger.Path = *ledger
	cfg.Paths.ResultDir = *result
	cfg.Paths.ValidDir = *valid
	cfg.Paths.InvalidDir = *invalid
	cfg.Extract.SpecOverrides = *specs

	// Setup logger
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Paths.ResultDir, 0o755); err != nil {
		printError("Error: cannot create result directory: %v\n", err)
		os.Exit(1)
	}

	specTable, err := extract.LoadSpecs(cfg.Extract.SpecOverrides)
	if err != nil {
		printError("Error: field specs: %v\n", err)
		os.Exit(1)
	}

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
		extract.NewFieldExtractor(specTable, logger),
		audit.New(filepath.Join(cfg.Paths.ResultDir, "Log.txt")),
		logger,
	)

	stats, err := p.Run(context.Background())
	if err != nil {
		logger.Error("batch failed", "error", err)
		if common.IsConfiguration(err) {
			printError("Error: fix the ledger/configuration and rerun: %v\n", err)
		} else {
			printError("Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Processed %d document(s): %d valid, %d invalid, %d failed\n",
		stats.Processed, stats.Valid, stats.Invalid, stats.Failed)
}
