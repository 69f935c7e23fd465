// Package report produces the end-of-batch XLSX summary, one row per
// processed document.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Entry is one processed document's outcome.
type Entry struct {
	File      string // final routed filename (or original on failure)
	Status    string // "valid" | "invalid" | "error"
	Reason    string // empty for valid documents
	CNPJ      string
	Number    string
	Period    string
	Value     string
	LegalName string
}

const sheet = "Resultado"

var headers = []string{
	"File",
	"Status",
	"Reason",
	"CNPJ",
	"Invoice Number",
	"Competency",
	"Service Value",
	"Legal Name",
}

// Write saves a summary workbook at path, overwriting any previous report.
func Write(path string, entries []Entry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.File)
		write(2, e.Status)
		write(3, e.Reason)
		write(4, e.CNPJ)
		write(5, e.Number)
		write(6, e.Period)
		write(7, e.Value)
		write(8, e.LegalName)
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %q: %w", path, err)
	}
	return nil
}
