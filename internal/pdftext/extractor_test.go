package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nota.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))
	return path
}

func TestExtract_RunsPdftotext(t *testing.T) {
	path := writePDF(t)
	stub := &stubRunner{stdout: []byte("page one\fpage two")}
	e := NewExtractorWithRunner(Config{}, stub)

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "pdftotext", stub.gotName)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", path, "-"}, stub.gotArgs)
	assert.Equal(t, "page one\fpage two", res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "pdf-text", res.Method)
}

func TestExtract_MissingFileIsIOError(t *testing.T) {
	stub := &stubRunner{}
	e := NewExtractorWithRunner(Config{}, stub)

	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, stub.gotName, "pdftotext must not run for an unreadable file")
}

func TestExtract_ToolFailure(t *testing.T) {
	path := writePDF(t)
	stub := &stubRunner{stderr: []byte("Syntax Error: broken xref"), err: errors.New("exit status 1")}
	e := NewExtractorWithRunner(Config{Pdftotext: "pdftotext"}, stub)

	res, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, res.Warnings[0], "broken xref")
}
