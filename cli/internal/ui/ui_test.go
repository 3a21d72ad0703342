package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := Out
	Out = &buf
	t.Cleanup(func() { Out = previous })
	return &buf
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{[]byte("raw"), "raw"},
		{"text", "text"},
		{int64(42), "42"},
		{1.5, "1.5"},
		{true, "true"},
		{ts, "2024-05-01T12:00:00Z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestPrintRows(t *testing.T) {
	buf := capture(t)

	err := PrintRows([]string{"id", "name"}, []map[string]any{
		{"id": int64(1), "name": "alice"},
		{"id": int64(2), "name": nil},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "NULL")
}

func TestPrintParameters(t *testing.T) {
	buf := capture(t)

	PrintParameters(nil)
	assert.Contains(t, buf.String(), "(none)")

	buf.Reset()
	PrintParameters([]any{"bob", int64(3)})
	assert.Contains(t, buf.String(), "bob")
	assert.Contains(t, buf.String(), "(string)")
	assert.Contains(t, buf.String(), "(int64)")
}

func TestPrintSQL(t *testing.T) {
	buf := capture(t)

	PrintSQL("SELECT 1")
	assert.Contains(t, buf.String(), "SELECT 1")
}
