package home

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/controls"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features/common"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features/common/components"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
	"github.com/konnectpro/konnectpro-gds/internal/ui/notifier"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	store      catalog.Store
	workspaces *workspace.Manager
	notifier   *notifier.Notifier
	logger     *slog.Logger
	isDev      bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store catalog.Store, workspaces *workspace.Manager, notify *notifier.Notifier, logger *slog.Logger, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:      store,
		workspaces: workspaces,
		notifier:   notify,
		logger:     logger,
		isDev:      isDev,
	}
}

// HomePage renders the full document for the session's current page.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	ws := h.workspaces.Load(r)
	if err := ws.Save(w, r); err != nil {
		h.logger.Error("failed to save workspace", "error", err)
	}

	app, err := common.BuildAppData(r.Context(), h.store, ws)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	title := "Panel Principal"
	if page, ok := ws.Router.Lookup(string(ws.Router.CurrentPage())); ok {
		title = page.Title
	}

	if err := components.Page(title, h.isDev, app).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint of the page.
// It does not send initial state; HomePage already rendered it. Every catalog
// change made by another session re-renders the counters and every table body,
// and clears the search boxes those bodies are no longer filtered by.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	ws := h.workspaces.Load(r)
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(ws.ID)
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendCatalogView(ctx, sse); err != nil {
				_ = sse.ConsoleError(err)
				// Keep the stream; the next change may succeed.
			}
		}
	}
}

func (h *Handlers) sendCatalogView(ctx context.Context, sse *datastar.ServerSentEventGenerator) error {
	stats, err := common.BuildStats(ctx, h.store)
	if err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.Stats(stats)); err != nil {
		return err
	}

	// The bodies below are unfiltered, so the search boxes are cleared with them.
	cleared := make(map[string]any)
	tables := make([]*table.Table, 0, len(catalog.Kinds()))
	for _, kind := range catalog.Kinds() {
		tableID, _ := workspace.TableForKind(kind)
		t, err := workspace.LoadTable(ctx, h.store, tableID)
		if err != nil {
			return err
		}
		cleared[controls.SearchInputID(tableID)] = ""
		tables = append(tables, t)
	}

	if err := sse.MarshalAndPatchSignals(cleared); err != nil {
		return err
	}
	for _, t := range tables {
		if err := common.PatchTable(sse, t); err != nil {
			return err
		}
	}
	return nil
}

// Navigate shows the requested page and re-renders the shell. Unknown pages
// keep the current page on screen.
func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	ws := h.workspaces.Load(r)
	ws.Router.ShowPage(chi.URLParam(r, "page"))
	if err := ws.Save(w, r); err != nil {
		h.logger.Error("failed to save workspace", "error", err)
	}

	sse := datastar.NewSSE(w, r)

	app, err := common.BuildAppData(r.Context(), h.store, ws)
	if err != nil {
		h.logger.Error("failed to build page", "error", err)
		_ = common.SendToast(sse, common.StoreError, components.SeverityError)
		return
	}

	if err := sse.PatchElementTempl(components.AppShell(app)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"sidebarOpen": false}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// ToggleSidebar flips the sidebar.
func (h *Handlers) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	h.updateSidebar(w, r, (*nav.Router).ToggleSidebar)
}

// OpenSidebar opens the sidebar.
func (h *Handlers) OpenSidebar(w http.ResponseWriter, r *http.Request) {
	h.updateSidebar(w, r, (*nav.Router).OpenSidebar)
}

// CloseSidebar closes the sidebar.
func (h *Handlers) CloseSidebar(w http.ResponseWriter, r *http.Request) {
	h.updateSidebar(w, r, (*nav.Router).CloseSidebar)
}

// PointerDown reports a pointer press somewhere on the document. The client
// says whether it landed inside the sidebar or on its toggle.
func (h *Handlers) PointerDown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inside, _ := strconv.ParseBool(q.Get("inside"))
	toggle, _ := strconv.ParseBool(q.Get("toggle"))

	h.updateSidebar(w, r, func(router *nav.Router) {
		router.PointerDown(inside, toggle)
	})
}

func (h *Handlers) updateSidebar(w http.ResponseWriter, r *http.Request, apply func(*nav.Router)) {
	ws := h.workspaces.Load(r)
	apply(ws.Router)
	if err := ws.Save(w, r); err != nil {
		h.logger.Error("failed to save workspace", "error", err)
	}

	sse := datastar.NewSSE(w, r)
	if err := common.PatchSidebar(sse, ws.Router); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// TicketSearch acknowledges a ticket lookup.
func (h *Handlers) TicketSearch(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals TicketSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to read signals: %w", err))
		return
	}

	sse := datastar.NewSSE(w, r)

	number := strings.TrimSpace(signals.TicketNumber)
	if number == "" {
		_ = common.SendToast(sse, "Por favor ingrese un número de boleto", components.SeverityWarning)
		return
	}

	history := "No"
	if signals.History {
		history = "Sí"
	}
	h.logger.Info("ticket search", "ticket", number, "history", signals.History)
	_ = common.SendToast(sse, "Buscando boleto: "+number+", Historial: "+history, components.SeverityInfo)
}

// RouteSearch acknowledges a route lookup.
func (h *Handlers) RouteSearch(w http.ResponseWriter, r *http.Request) {
	var signals RouteSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("route search without signals", "error", err)
	}

	sse := datastar.NewSSE(w, r)
	h.logger.Info("route search", "origin", signals.Origin, "destination", signals.Destination)
	_ = common.SendToast(sse, "Búsqueda de rutas iniciada", components.SeverityInfo)
}
