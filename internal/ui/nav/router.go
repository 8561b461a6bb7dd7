package nav

import (
	"log/slog"
)

// Sidebar toggle glyphs.
const (
	IconSidebarOpen   = "ri-menu-unfold-line"
	IconSidebarClosed = "ri-menu-fold-line"
)

// Loader is the per-page data loading hook dispatched after every navigation.
type Loader interface {
	Load(id string)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(id string)

// Load calls f(id).
func (f LoaderFunc) Load(id string) { f(id) }

// State is the serializable part of a Router.
type State struct {
	Page        string `json:"page"`
	Highlight   string `json:"highlight"`
	SidebarOpen bool   `json:"sidebar_open"`
}

// Router is the single source of truth for what is on screen.
// Exactly one page is visible at any time. A Router is not safe for concurrent
// use; each browser session owns its own.
type Router struct {
	pages       []Page
	index       map[PageID]int
	current     PageID
	highlight   string
	sidebarOpen bool
	loader      Loader
	logger      *slog.Logger
}

// NewRouter creates a router over pages, or DefaultPages when none are given.
// The first page is the initial one; call Start to enter it.
func NewRouter(logger *slog.Logger, loader Loader, pages ...Page) *Router {
	if len(pages) == 0 {
		pages = DefaultPages()
	}
	if loader == nil {
		loader = LoaderFunc(func(string) {})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	index := make(map[PageID]int, len(pages))
	for i, p := range pages {
		index[p.ID] = i
	}

	return &Router{
		pages:   pages,
		index:   index,
		current: pages[0].ID,
		loader:  loader,
		logger:  logger,
	}
}

// Start enters the initial page.
func (r *Router) Start() {
	r.ShowPage(string(r.pages[0].ID))
}

// ShowPage makes id the only visible page. An unknown id leaves the visible page
// unchanged and logs a diagnostic. Either way the sidebar closes, the menu
// highlight follows id, and the loader hook runs with id. It reports whether
// the page changed to id.
func (r *Router) ShowPage(id string) bool {
	r.CloseSidebar()

	_, known := r.index[PageID(id)]
	if known {
		r.current = PageID(id)
	} else {
		r.logger.Warn("page not found", "page", id, "current", r.current)
	}

	r.highlight = id
	r.loader.Load(id)
	return known
}

// CurrentPage returns the visible page.
func (r *Router) CurrentPage() PageID {
	return r.current
}

// Visible reports whether id is the visible page.
func (r *Router) Visible(id PageID) bool {
	return r.current == id
}

// Lookup returns the page with the given id.
func (r *Router) Lookup(id string) (Page, bool) {
	i, ok := r.index[PageID(id)]
	if !ok {
		return Page{}, false
	}
	return r.pages[i], true
}

// Pages returns all pages in menu order.
func (r *Router) Pages() []Page {
	return append([]Page(nil), r.pages...)
}

// MenuItems returns the menu with exactly the entries for the last requested
// page marked active.
func (r *Router) MenuItems() []MenuItem {
	items := make([]MenuItem, len(r.pages))
	for i, p := range r.pages {
		items[i] = MenuItem{Page: p, Active: string(p.ID) == r.highlight}
	}
	return items
}

// IsSidebarOpen reports the sidebar state.
func (r *Router) IsSidebarOpen() bool {
	return r.sidebarOpen
}

// SidebarIcon returns the toggle glyph matching the sidebar state.
func (r *Router) SidebarIcon() string {
	if r.sidebarOpen {
		return IconSidebarOpen
	}
	return IconSidebarClosed
}

// OpenSidebar opens the sidebar.
func (r *Router) OpenSidebar() {
	r.sidebarOpen = true
}

// CloseSidebar closes the sidebar.
func (r *Router) CloseSidebar() {
	r.sidebarOpen = false
}

// ToggleSidebar flips the sidebar state.
func (r *Router) ToggleSidebar() {
	r.sidebarOpen = !r.sidebarOpen
}

// PointerDown handles a pointer interaction anywhere on the document. The sidebar
// closes unless the pointer landed inside it or on its toggle.
func (r *Router) PointerDown(insideSidebar, onToggle bool) {
	if insideSidebar || onToggle {
		return
	}
	r.CloseSidebar()
}

// State captures the router for persistence.
func (r *Router) State() State {
	return State{
		Page:        string(r.current),
		Highlight:   r.highlight,
		SidebarOpen: r.sidebarOpen,
	}
}

// Restore reinstates a captured state without dispatching the loader. An unknown
// page falls back to the initial page.
func (r *Router) Restore(s State) {
	if _, ok := r.index[PageID(s.Page)]; ok {
		r.current = PageID(s.Page)
		r.highlight = s.Highlight
	} else {
		r.logger.Warn("restored page not found, falling back", "page", s.Page)
		r.current = r.pages[0].ID
		r.highlight = string(r.current)
	}
	r.sidebarOpen = s.SidebarOpen
}
