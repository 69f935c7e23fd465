// Package pdftext turns a PDF document into the concatenation of its textual
// content in reading order, using the poppler pdftotext tool.
package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/financeiro-script/nfse-validator/internal/extract"
)

type Config struct {
	Pdftotext string        // binary name or path, "pdftotext" when empty
	Timeout   time.Duration // per-document cap, 0 means no cap
}

type Extractor struct {
	cfg    Config
	runner Runner
}

func NewExtractor(cfg Config) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// NewExtractorWithRunner is for tests that stub the external command.
func NewExtractorWithRunner(cfg Config, r Runner) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: r}
}

// Extract runs pdftotext over the document at path and returns its text.
// The source file must be readable up front so an unreadable document
// surfaces as an I/O error, not a tool failure.
func (e *Extractor) Extract(ctx context.Context, path string) (extract.TextResult, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return extract.TextResult{}, fmt.Errorf("open document: %w", err)
	}
	_ = f.Close()

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return extract.TextResult{Warnings: []string{string(errb)}}, fmt.Errorf("pdftotext: %w", err)
	}

	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")

	return extract.TextResult{
		Text:     text,
		Pages:    pages,
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}
