package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectType(t *testing.T) {
	tests := map[string]FileType{
		"statement.pdf":  PDF,
		"STATEMENT.PDF":  PDF,
		"extrato.xls":    XLS,
		"alerts.txt":     Text,
		"paste":          Text,
		"export.sms":     Text,
		"statement.xlsx": Text,
	}
	for name, want := range tests {
		assert.Equal(t, want, DetectType(name), name)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.txt"))
	assert.True(t, Supported("a.PDF"))
	assert.True(t, Supported("a.xls"))
	assert.False(t, Supported("a.png"))
	assert.False(t, Supported("README"))
}

func TestReadText(t *testing.T) {
	text, err := Read("alerts.txt", []byte("HDFC: INR 100 credited"))
	require.NoError(t, err)
	assert.Equal(t, "HDFC: INR 100 credited", text)

	_, err = Read("alerts.txt", []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReadBrokenBinaries(t *testing.T) {
	_, err := Read("statement.pdf", []byte("not a pdf"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Read("statement.xls", []byte("not a workbook"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0o644))

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
