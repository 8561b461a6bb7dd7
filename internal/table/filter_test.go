package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTable() *Table {
	t := New("destinationsTable", "Destinos", "País", "Ciudad", "Estado")
	t.Append(Row{ID: 1, Cells: TextCells("Chile", "Santiago", "Activo")})
	t.Append(Row{ID: 2, Cells: TextCells("México", "Temuco", "Inactivo")})
	return t
}

func visibleIDs(t *Table) []int64 {
	var ids []int64
	for _, r := range t.VisibleRows() {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []int64
	}{
		{name: "matches a single city", term: "santiago", want: []int64{1}},
		{name: "empty term shows every row", term: "", want: []int64{1, 2}},
		{name: "no match hides every row", term: "xyz", want: nil},
		{name: "case insensitive", term: "SANTIAGO", want: []int64{1}},
		{name: "unanchored substring", term: "tiag", want: []int64{1}},
		{name: "accented upper case folds", term: "MÉXICO", want: []int64{2}},
		{name: "substring shared by both rows", term: "activo", want: []int64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := sampleTable()
			n := Filter(tbl, tt.term)
			assert.Equal(t, tt.want, visibleIDs(tbl))
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.term, tbl.Term)
		})
	}
}

func TestFilter_RecomputesFromScratch(t *testing.T) {
	tbl := sampleTable()

	Filter(tbl, "xyz")
	assert.Empty(t, tbl.VisibleRows())

	Filter(tbl, "temuco")
	assert.Equal(t, []int64{2}, visibleIDs(tbl))

	Filter(tbl, "")
	assert.Equal(t, []int64{1, 2}, visibleIDs(tbl))
}

func TestFilter_LeavesHeaderAlone(t *testing.T) {
	tbl := sampleTable()
	Filter(tbl, "xyz")
	assert.True(t, tbl.Head[0].Visible)
}

func TestFilter_RowWithoutCellsNeverMatches(t *testing.T) {
	tbl := sampleTable()
	tbl.Append(Row{ID: 3})

	Filter(tbl, "")
	assert.Equal(t, []int64{1, 2}, visibleIDs(tbl))
}

func TestMatches(t *testing.T) {
	row := Row{Cells: TextCells("Terminal Sur", "Santiago")}
	assert.True(t, Matches(row, "sur"))
	assert.False(t, Matches(row, "norte"))
}

func TestFilterFields(t *testing.T) {
	tbl := sampleTable()
	Filter(tbl, "")

	n := FilterFields(tbl, map[int]string{0: "chi", 2: ""})
	assert.Equal(t, 1, n)
	assert.Equal(t, []int64{1}, visibleIDs(tbl))

	tbl = sampleTable()
	n = FilterFields(tbl, map[int]string{9: "x"})
	assert.Equal(t, 0, n)
}
