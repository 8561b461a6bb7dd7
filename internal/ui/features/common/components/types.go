// Package components renders the dashboard's HTML. Components are templ
// templates so handlers can hand them straight to Datastar patches.
package components

import (
	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/controls"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

// AppData holds everything needed to render the application shell.
type AppData struct {
	Menu        []nav.MenuItem
	Pages       []PageView
	SidebarOpen bool
	SidebarIcon string
	Stats       DashboardStats
}

// PageView is one page container.
type PageView struct {
	Page    nav.Page
	Visible bool
	// Section is set for pages that show a catalog table.
	Section *SectionView
}

// SectionView is a catalog table with its header region.
type SectionView struct {
	Kind          catalog.Kind
	Header        controls.Header
	Table         *table.Table
	SearchButton  string // id of the advanced search button
	SearchModalID string
}

// DashboardStats holds the counters shown on the dashboard.
type DashboardStats struct {
	Destinations        int
	DestinationMappings int
	BoardingStages      int
	BoardingMappings    int
}

// Severity is the kind of a toast notification.
type Severity string

// Toast severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ToastData is a single notification.
type ToastData struct {
	ID       string
	Message  string
	Severity Severity
}

// FormModal is a create or edit form for one record kind.
type FormModal struct {
	ID      string
	Title   string
	Schema  catalog.Schema
	Values  map[string]string
	Invalid map[string]bool
	// Action is the Datastar action submitting the form, e.g. "@post('/records/destination')".
	Action string
	Submit string
}

// DetailModal lists every field of a record.
type DetailModal struct {
	ID    string
	Title string
	Items []DetailItem
}

// DetailItem is one label/value pair of a DetailModal.
type DetailItem struct {
	Label string
	Value string
}

// SearchModal is the advanced search form of one record kind.
type SearchModal struct {
	ID     string
	Title  string
	Fields []catalog.Field
	Action string
}

// ActionGroup is the view, edit and delete buttons of one table row.
type ActionGroup struct {
	// DOMName prefixes the button classes, e.g. "show-destination".
	DOMName string
	URL     string
	Confirm string
}
