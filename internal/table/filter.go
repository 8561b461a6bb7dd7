package table

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter recomputes the visibility of every body row for the given search term.
// A row is visible iff at least one of its cells contains the term, compared
// case-insensitively as an unanchored substring. The empty term matches every row.
// It returns the number of visible rows.
func Filter(t *Table, term string) int {
	caser := cases.Lower(language.Spanish)
	needle := caser.String(term)
	t.Term = term

	visible := 0
	for i := range t.Body {
		t.Body[i].Visible = rowMatches(caser, t.Body[i], needle)
		if t.Body[i].Visible {
			visible++
		}
	}
	return visible
}

// Matches reports whether a single row matches the search term.
func Matches(row Row, term string) bool {
	caser := cases.Lower(language.Spanish)
	return rowMatches(caser, row, caser.String(term))
}

// FilterFields hides every body row where a non-empty filter value is not a
// substring of the cell at the given column index. Rows hidden before the call
// stay hidden. It returns the number of visible rows.
func FilterFields(t *Table, filters map[int]string) int {
	caser := cases.Lower(language.Spanish)

	visible := 0
	for i := range t.Body {
		row := &t.Body[i]
		for col, value := range filters {
			if value == "" {
				continue
			}
			if col >= len(row.Cells) || !strings.Contains(caser.String(row.Cells[col].Text), caser.String(value)) {
				row.Visible = false
				break
			}
		}
		if row.Visible {
			visible++
		}
	}
	return visible
}

// rowMatches is false for a row without cells, even for the empty term.
func rowMatches(caser cases.Caser, row Row, needle string) bool {
	for _, c := range row.Cells {
		if strings.Contains(caser.String(c.Text), needle) {
			return true
		}
	}
	return false
}
