// Package ledger reads the expected-invoice spreadsheet and resolves the
// columns reconciliation needs.
package ledger

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/financeiro-script/nfse-validator/internal/common"
)

// ReadRows materializes the first sheet of the workbook at path into rows of
// cell text. Both the legacy binary format (.xls) and the modern one are
// accepted. The file is opened and closed within the call; rows are not
// cached across batches.
func ReadRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return readLegacyRows(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.NewAppError("CONFIG_ERROR", "ledger workbook has no sheets", common.ErrHeaderNotFound)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read ledger sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readLegacyRows(path string) ([][]string, error) {
	wb, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}
	defer func() { _ = closer.Close() }()

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, common.NewAppError("CONFIG_ERROR", "ledger workbook has no sheets", common.ErrHeaderNotFound)
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
