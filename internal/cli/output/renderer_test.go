package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_ResolvesAuto(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{name: "auto on terminal", mode: ModeAuto, isTTY: true, want: ModeText},
		{name: "auto on pipe", mode: ModeAuto, isTTY: false, want: ModeMarkdown},
		{name: "empty on pipe", mode: "", isTTY: false, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, isTTY: true, want: ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.Mode())
		})
	}
}

func TestNewRenderer_BufferIsNotATerminal(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.Mode())
}

func TestRenderer_Table(t *testing.T) {
	cols := []string{"ID", "Ciudad"}
	rows := [][]string{{"1638", "Santiago"}, {"1639", "Temuco"}}

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRendererWithTTY(&out, &bytes.Buffer{}, true, ModeText)
		require.NoError(t, r.Table(cols, rows))

		assert.Contains(t, out.String(), "Santiago")
		assert.Contains(t, out.String(), "│")
		assert.Contains(t, out.String(), "(2 rows)")
	})

	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeMarkdown)
		require.NoError(t, r.Table(cols, rows))

		assert.Contains(t, out.String(), "Santiago |")
		assert.Contains(t, out.String(), "---")
		assert.Contains(t, out.String(), "(2 rows)")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		r := NewRendererWithTTY(&out, &bytes.Buffer{}, false, ModeJSON)
		require.NoError(t, r.Table(cols, rows))

		var got []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, []map[string]string{
			{"ID": "1638", "Ciudad": "Santiago"},
			{"ID": "1639", "Ciudad": "Temuco"},
		}, got)
	})
}

func TestRenderer_Info(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	r.Info("wrote %d rows", 3)

	assert.Empty(t, out.String())
	assert.Equal(t, "wrote 3 rows\n", errOut.String())
}
