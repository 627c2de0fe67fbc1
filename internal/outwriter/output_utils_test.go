package outwriter

import (
	"io"
	"os"
	"testing"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}

// TestCreateFormatters checks precision handling.
func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "3.14", fmtFloat(3.14159))
	assert.Equal(t, "%d", intFmt)

	fmtZero, _ := createFormatters(0)
	assert.Equal(t, "3", fmtZero(3.14159))
}

// TestLabelFor checks the color toggle falls back to plain labels.
func TestLabelFor(t *testing.T) {
	plain := &contract.Config{UseColors: false}
	assert.Equal(t, contract.FastValue, labelFor(plain, 10))
	assert.Equal(t, contract.CriticalValue, labelFor(plain, 200))

	colored := &contract.Config{UseColors: true}
	assert.Contains(t, labelFor(colored, 10), contract.FastValue)
}

// TestGetMaxTableTitleWidth checks the width override and clamping.
func TestGetMaxTableTitleWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{name: "narrow terminal clamps to minimum", width: 40, expected: 15},
		{name: "standard terminal", width: 120, expected: 60},
		{name: "very wide terminal clamps to maximum", width: 400, expected: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, getMaxTableTitleWidth(cfg))
		})
	}
}

// TestWriteWithFile checks the file path writes and reports success.
func TestWriteWithFile(t *testing.T) {
	path := t.TempDir() + "/out.txt"
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote text")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(readFile(t, path)))
}
