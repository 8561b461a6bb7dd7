// Package nav implements the page router of the dashboard: the set of mutually
// exclusive pages, which one is on screen, the menu highlight and the slide-in
// sidebar.
package nav

// PageID identifies one of the top-level pages.
type PageID string

// Known pages.
const (
	PageDashboard           PageID = "dashboard"
	PageDestinations        PageID = "destinations"
	PageDestinationMappings PageID = "destination-mappings"
	PageBoardingStages      PageID = "boarding-stages"
	PageBoardingMappings    PageID = "boarding-mappings"
)

// Page is a top-level view with its container and menu entry.
type Page struct {
	ID    PageID
	Title string
	Label string // menu label
	Icon  string
}

// ContainerID returns the DOM id of the page container.
func (p Page) ContainerID() string {
	return string(p.ID) + "-content"
}

// DefaultPages returns the pages of the back-office, dashboard first.
func DefaultPages() []Page {
	return []Page{
		{ID: PageDashboard, Title: "Panel Principal", Label: "Inicio", Icon: "ri-home-line"},
		{ID: PageDestinations, Title: "Destinos", Label: "Destinos", Icon: "ri-map-pin-line"},
		{ID: PageDestinationMappings, Title: "Mapeo de Destinos", Label: "Mapeo de Destinos", Icon: "ri-route-line"},
		{ID: PageBoardingStages, Title: "Etapas de Embarque", Label: "Etapas", Icon: "ri-bus-line"},
		{ID: PageBoardingMappings, Title: "Mapeo de Etapas", Label: "Mapeo de Etapas", Icon: "ri-git-merge-line"},
	}
}

// MenuItem is a navigation entry and its highlight state.
type MenuItem struct {
	Page   Page
	Active bool
}
