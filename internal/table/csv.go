package table

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultFilename is used when an export is requested without a base name.
const DefaultFilename = "export"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Serialize renders every row of the table as CSV: header rows and body rows
// alike, in document order, regardless of their current visibility. Rows without
// cells are skipped. Fields are joined with commas and rows with newlines; there
// is no trailing newline.
func Serialize(t *Table) string {
	rows := t.Rows()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row.Cells) == 0 {
			continue
		}
		fields := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			fields[i] = EscapeField(CellText(c))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes the serialized table to w.
func WriteCSV(w io.Writer, t *Table) error {
	_, err := io.WriteString(w, Serialize(t))
	return err
}

// EscapeField doubles embedded quotes and wraps the field in quotes when it
// contains a comma, a newline or a quote.
func EscapeField(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	if strings.ContainsAny(s, ",\n\"") {
		return `"` + s + `"`
	}
	return s
}

// CellText returns the exportable text of a cell: the markup with buttons, links
// and action containers removed, or the plain text when there is no markup.
// Whitespace runs collapse to single spaces and the result is trimmed.
func CellText(c Cell) string {
	text := c.Text
	if c.Markup != "" {
		text = stripActions(c.Markup)
	}
	return strings.Join(strings.Fields(text), " ")
}

// Slug lower-cases a label and replaces whitespace runs with underscores.
func Slug(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
}

// Filename returns the download name for an export: <base>_<YYYY-MM-DD>.csv,
// using the UTC date of now.
func Filename(base string, now time.Time) string {
	if base == "" {
		base = DefaultFilename
	}
	return fmt.Sprintf("%s_%s.csv", base, now.UTC().Format(time.DateOnly))
}

func stripActions(markup string) string {
	parent := &html.Node{Type: html.ElementNode, Data: "td", DataAtom: atom.Td}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return markup
	}

	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n)
	}
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if isAction(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode && isBlock(n.DataAtom) {
		b.WriteByte(' ')
	}
}

func isAction(n *html.Node) bool {
	if n.DataAtom == atom.Button || n.DataAtom == atom.A {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" && slices.Contains(strings.Fields(attr.Val), "actions") {
			return true
		}
	}
	return false
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.P, atom.Br, atom.Li, atom.Ul, atom.Ol:
		return true
	}
	return false
}
