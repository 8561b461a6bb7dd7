package table

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Santiago", want: "Santiago"},
		{in: `He said "hi", ok`, want: `"He said ""hi"", ok"`},
		{in: "a,b", want: `"a,b"`},
		{in: "line\nbreak", want: "\"line\nbreak\""},
		{in: `"`, want: `""""`},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeField(tt.in))
		})
	}
}

func TestSerialize_Basic(t *testing.T) {
	tbl := New("t", "T", "ID", "City")
	tbl.Append(Row{Cells: TextCells("1", "Santiago")})

	assert.Equal(t, "ID,City\n1,Santiago", Serialize(tbl))
}

func TestSerialize_QuotesInCell(t *testing.T) {
	tbl := New("t", "T", "Note")
	tbl.Append(Row{Cells: TextCells(`He said "hi", ok`)})

	assert.Equal(t, "Note\n\"He said \"\"hi\"\", ok\"", Serialize(tbl))
}

func TestSerialize_SkipsEmptyRows(t *testing.T) {
	tbl := New("t", "T", "ID")
	tbl.Head = append(tbl.Head, Row{})
	tbl.Append(Row{})
	tbl.Append(Row{Cells: TextCells("7")})

	assert.Equal(t, "ID\n7", Serialize(tbl))
}

func TestSerialize_IgnoresSearchFilter(t *testing.T) {
	tbl := New("t", "T", "ID", "Parity")
	for i := 1; i <= 10; i++ {
		parity := "impar"
		if i%2 == 0 {
			parity = "par"
		}
		tbl.Append(Row{ID: int64(i), Cells: TextCells(fmt.Sprint(i), parity)})
	}

	require.Equal(t, 5, Filter(tbl, "impar"))

	out := Serialize(tbl)
	lines := bytes.Split([]byte(out), []byte("\n"))
	assert.Len(t, lines, 11, "header plus all ten rows")
}

func TestCellText(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "plain text collapses whitespace", cell: Cell{Text: "  Terminal \n\t Sur  "}, want: "Terminal Sur"},
		{
			name: "buttons are stripped",
			cell: Cell{Markup: `<button class="edit-destination">Editar</button><button>Borrar</button>`},
			want: "",
		},
		{
			name: "links are stripped",
			cell: Cell{Markup: `Santiago <a href="https://es.wikipedia.org">wiki</a>`},
			want: "Santiago",
		},
		{
			name: "action containers are stripped",
			cell: Cell{Markup: `<span>Activo</span><div class="flex actions"><span>Ver</span></div>`},
			want: "Activo",
		},
		{
			name: "block elements are separated",
			cell: Cell{Markup: `<div>Región</div><div>Metropolitana</div>`},
			want: "Región Metropolitana",
		},
		{name: "markup wins over text", cell: Cell{Text: "ignored", Markup: "<b>used</b>"}, want: "used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellText(tt.cell))
		})
	}
}

func TestSerialize_ActionColumnExportsEmptyField(t *testing.T) {
	tbl := New("t", "T", "ID", "Acciones")
	tbl.Append(Row{Cells: []Cell{{Text: "1638"}, {Markup: `<button>Editar</button>`}}})

	assert.Equal(t, "ID,Acciones\n1638,", Serialize(tbl))
}

func TestWriteCSV(t *testing.T) {
	tbl := New("t", "T", "ID")
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "ID", buf.String())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "mapeo_de_destinos", Slug("Mapeo de Destinos"))
	assert.Equal(t, "destinos", Slug("Destinos"))
	assert.Equal(t, "etapas_de_abordaje", Slug("Etapas  de\tAbordaje"))
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 5, 29, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "destinos_2025-05-29.csv", Filename("destinos", now))
	assert.Equal(t, "export_2025-05-29.csv", Filename("", now))

	local := time.Date(2025, 5, 30, 1, 0, 0, 0, time.FixedZone("CLT", 3*3600))
	assert.Equal(t, "x_2025-05-29.csv", Filename("x", local), "date is taken in UTC")
}
