package ledger

import (
	"fmt"

	"github.com/financeiro-script/nfse-validator/internal/common"
	"github.com/financeiro-script/nfse-validator/internal/normalize"
)

// Index maps required column titles to their positions in the header row.
// Title matching ignores case, whitespace and control characters, so
// "C N P J" and "cnpj" resolve to the same column.
type Index struct {
	columns map[string]int
}

// BuildIndex locates every required title in the header row (rows[0]).
// A missing header row or a missing title is a configuration problem that
// aborts reconciliation for the whole batch.
func BuildIndex(rows [][]string, required []string) (*Index, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, common.WrapError(common.ErrHeaderNotFound, "ledger index")
	}
	header := rows[0]

	columns := make(map[string]int, len(required))
	for _, title := range required {
		pos := -1
		for i, cell := range header {
			if normalize.TitleEquals(cell, title) {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, fmt.Errorf("ledger index: title %q: %w", title, common.ErrColumnNotFound)
		}
		columns[title] = pos
	}
	return &Index{columns: columns}, nil
}

// Value returns the raw cell text for title in row, or "" when the row
// is too short or the title was not part of the required set.
func (ix *Index) Value(row []string, title string) string {
	pos, ok := ix.columns[title]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// DataRows returns the rows after the header.
func DataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// RowEmpty reports whether every cell in the row is blank; such rows are
// skipped without error during the match scan.
func RowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
