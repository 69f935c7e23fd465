package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resultado.xlsx")

	entries := []Entry{
		{File: "0042_ACME_LTDA.pdf", Status: "valid", CNPJ: "12.345.678/0001-90", Number: "42"},
		{File: "erro_nota.pdf", Status: "invalid", Reason: "document data does not match any row of the validation spreadsheet"},
	}
	require.NoError(t, Write(path, entries))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "File", rows[0][0])
	assert.Equal(t, "0042_ACME_LTDA.pdf", rows[1][0])
	assert.Equal(t, "valid", rows[1][1])
	assert.Equal(t, "invalid", rows[2][1])
	assert.Contains(t, rows[2][2], "validation spreadsheet")
}

func TestWrite_NoEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resultado.xlsx")
	require.NoError(t, Write(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
