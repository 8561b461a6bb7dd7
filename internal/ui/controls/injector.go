// Package controls attaches live search and CSV export controls to the header
// region of managed tables.
//
// Headers are described declaratively: every render builds the full header from
// {title, search box, action group} so nothing attached to the previous render
// is lost. Bindings are created at most once per table per Injector.
package controls

import (
	"log/slog"
	"net/url"
	"sort"

	"github.com/konnectpro/konnectpro-gds/internal/table"
)

// Section describes the page section that wraps a managed table.
type Section struct {
	TableID string
	// Header is the section's header region; nil when the section has none.
	Header *HeaderRegion
}

// HeaderRegion is the pre-existing content of a section header.
type HeaderRegion struct {
	Title  string
	Create *Action // "create new" affordance, if the section has one
}

// SectionSource resolves a table id to its section.
type SectionSource interface {
	Section(tableID string) (Section, bool)
}

// ActionKind tells the renderer how an action is triggered.
type ActionKind int

// Action kinds.
const (
	ActionRequest  ActionKind = iota // Datastar request to URL
	ActionDownload                   // plain link download of URL
)

// Action is a header button.
type Action struct {
	ID    string
	Label string
	Icon  string
	URL   string
	Kind  ActionKind
	Class string
}

// SearchBox is the live search input of a bound table.
type SearchBox struct {
	InputID     string
	Placeholder string
	URL         string
}

// Header is the rendered description of a header region.
type Header struct {
	TableID string
	Title   string
	Search  *SearchBox
	Actions []Action
}

// Binding is the association of a table with its search input and export action.
type Binding struct {
	TableID       string
	Label         string
	SearchInputID string
	Filename      string
}

// ExportURL returns the export endpoint for the binding.
func (b Binding) ExportURL() string {
	return ExportURL(b.TableID, b.Filename)
}

// SearchURL returns the search endpoint for the binding.
func (b Binding) SearchURL() string {
	return "/tables/" + url.PathEscape(b.TableID) + "/search"
}

// ExportURL returns the export endpoint for a table and download base name.
func ExportURL(tableID, filename string) string {
	u := "/tables/" + url.PathEscape(tableID) + "/export"
	if filename != "" {
		u += "?filename=" + url.QueryEscape(filename)
	}
	return u
}

// SearchInputID returns the derived id of a table's search input.
func SearchInputID(tableID string) string {
	return tableID + "Search"
}

// Injector owns the table control bindings of one browser session.
type Injector struct {
	sections SectionSource
	logger   *slog.Logger
	bindings map[string]Binding
}

// NewInjector creates an Injector resolving tables through sections.
func NewInjector(sections SectionSource, logger *slog.Logger) *Injector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Injector{
		sections: sections,
		logger:   logger,
		bindings: make(map[string]Binding),
	}
}

// Ensure binds search and export controls to tableID. A missing table or header
// region is logged and leaves everything untouched. Calling it again for a
// bound table is a no-op. It reports whether the table is bound afterwards.
func (in *Injector) Ensure(tableID, label string) bool {
	section, ok := in.sections.Section(tableID)
	if !ok {
		in.logger.Warn("table not found for controls", "table", tableID)
		return false
	}
	if section.Header == nil {
		in.logger.Warn("header region not found for table", "table", tableID)
		return false
	}
	if _, bound := in.bindings[tableID]; bound {
		return true
	}

	in.bindings[tableID] = Binding{
		TableID:       tableID,
		Label:         label,
		SearchInputID: SearchInputID(tableID),
		Filename:      table.Slug(label),
	}
	in.logger.Debug("table controls attached", "table", tableID)
	return true
}

// Binding returns the binding of tableID.
func (in *Injector) Binding(tableID string) (Binding, bool) {
	b, ok := in.bindings[tableID]
	return b, ok
}

// Bindings returns all bindings ordered by table id.
func (in *Injector) Bindings() []Binding {
	out := make([]Binding, 0, len(in.bindings))
	for _, b := range in.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableID < out[j].TableID })
	return out
}

// Restore re-creates previously captured bindings through Ensure, so tables that
// no longer resolve are dropped.
func (in *Injector) Restore(bindings []Binding) {
	for _, b := range bindings {
		in.Ensure(b.TableID, b.Label)
	}
}

// Header renders the header region of tableID. Unbound tables keep their
// original title and create affordance; bound tables add the search box and the
// export action, grouped after the create affordance.
func (in *Injector) Header(tableID string) (Header, bool) {
	section, ok := in.sections.Section(tableID)
	if !ok || section.Header == nil {
		return Header{}, false
	}

	h := Header{TableID: tableID, Title: section.Header.Title}
	if section.Header.Create != nil {
		h.Actions = append(h.Actions, *section.Header.Create)
	}

	b, bound := in.bindings[tableID]
	if !bound {
		return h, true
	}

	h.Search = &SearchBox{
		InputID:     b.SearchInputID,
		Placeholder: "Buscar en " + b.Label + "...",
		URL:         b.SearchURL(),
	}
	h.Actions = append(h.Actions, Action{
		ID:    tableID + "Export",
		Label: "Exportar CSV",
		Icon:  "ri-download-line",
		URL:   b.ExportURL(),
		Kind:  ActionDownload,
		Class: "export-csv-button",
	})
	return h, true
}
