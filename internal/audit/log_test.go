package audit

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Log.txt")
	l := New(path)
	l.now = func() time.Time {
		return time.Date(2024, 3, 5, 14, 22, 10, 0, time.UTC)
	}
	return l, path
}

func TestLog_LineFormat(t *testing.T) {
	l, path := fixedLogger(t)

	require.NoError(t, l.Info("NFSe valid: 0042_ACME_LTDA.pdf"))
	require.NoError(t, l.Log(LevelWarning, "no PDF files found", "dir=Notas"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "[2024-03-05 14:22:10] [INFO] NFSe valid: 0042_ACME_LTDA.pdf", lines[0])
	assert.Equal(t, "[2024-03-05 14:22:10] [WARNING] no PDF files found dir=Notas", lines[1])
}

func TestLog_AppendsAcrossWrites(t *testing.T) {
	l, path := fixedLogger(t)
	require.NoError(t, l.Info("first"))
	require.NoError(t, l.Info("second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestLogError_ThreeLineEntry(t *testing.T) {
	l, path := fixedLogger(t)
	require.NoError(t, l.LogError(errors.New("permission denied"), "processing nota.pdf"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "[2024-03-05 14:22:10] [ERROR] Error in context: processing nota.pdf")
	assert.Contains(t, text, "Message: permission denied")
	assert.Regexp(t, regexp.MustCompile(`StackTrace: goroutine`), text)
}

func TestLog_UnwritablePath(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "missing", "Log.txt"))
	assert.Error(t, l.Info("never lands"))
}
