// Package router renames a processed document and files it into the valid
// or invalid destination directory.
package router

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/financeiro-script/nfse-validator/internal/extract"
)

var (
	nonLetters  = regexp.MustCompile(`[^a-zA-Z\s]`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// errPrefix flags documents routed under their original name because the
// canonical one could not be derived.
const errPrefix = "erro_"

type Router struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{log: log}
}

// CanonicalName derives the traceable filename for a record: invoice number
// zero-padded to at least 4 digits, plus the issuer legal name uppercased
// with non-letters stripped and runs of whitespace collapsed to underscores.
// ok is false when number or legal name is missing.
func CanonicalName(number, legalName string) (name string, ok bool) {
	if number == "" || legalName == "" {
		return "", false
	}
	padded := number
	for len(padded) < 4 {
		padded = "0" + padded
	}
	sanitized := nonLetters.ReplaceAllString(legalName, "")
	sanitized = whitespaces.ReplaceAllString(strings.ToUpper(strings.TrimSpace(sanitized)), "_")
	return fmt.Sprintf("%s_%s.pdf", padded, sanitized), true
}

// Route copies the source document under its new name beside the original,
// then moves the copy into validDir or invalidDir. Existing files with the
// same name are overwritten in both places. Returns the final path.
func (r *Router) Route(srcPath string, rec *extract.InvoiceRecord, valid bool, validDir, invalidDir string) (string, error) {
	newName, ok := CanonicalName(rec.Number, rec.Issuer.LegalName)
	if !ok {
		newName = errPrefix + filepath.Base(srcPath)
		r.log.Warn("invoice number or legal name missing, using original file name",
			"file", filepath.Base(srcPath))
	}

	renamed := filepath.Join(filepath.Dir(srcPath), newName)
	if err := copyFile(srcPath, renamed); err != nil {
		return "", fmt.Errorf("copy %q: %w", srcPath, err)
	}

	destDir := invalidDir
	if valid {
		destDir = validDir
	}
	finalPath := filepath.Join(destDir, newName)
	if err := moveFile(renamed, finalPath); err != nil {
		return "", fmt.Errorf("move %q: %w", renamed, err)
	}
	return finalPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// moveFile renames when possible, falling back to copy+remove when source
// and destination sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
