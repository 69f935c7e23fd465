// Package ingest discovers NFSe documents waiting to be validated.
package ingest

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/financeiro-script/nfse-validator/constants"
)

// ListInvoices returns the paths of all recognized document files directly
// inside dir, sorted by name. A missing directory or an empty one is
// reported with a nil slice and no error; both skip the batch.
func ListInvoices(dir string, log *slog.Logger) ([]string, error) {
	if log == nil {
		log = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error("invoices directory not found", "dir", dir)
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || isHidden(e.Name()) {
			continue
		}
		if !constants.AllowedExt(filepath.Ext(e.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		log.Warn("no PDF files found", "dir", dir)
	}
	return paths, nil
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
