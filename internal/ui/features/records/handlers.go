package records

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features/common"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features/common/components"
	"github.com/konnectpro/konnectpro-gds/internal/ui/notifier"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// Handlers provides HTTP handlers for the catalog data pages.
type Handlers struct {
	store      catalog.Store
	workspaces *workspace.Manager
	notifier   *notifier.Notifier
	logger     *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store catalog.Store, workspaces *workspace.Manager, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		store:      store,
		workspaces: workspaces,
		notifier:   notify,
		logger:     logger,
	}
}

// =============================================================================
// Tables
// =============================================================================

// Search re-renders a table body with the rows matching the table's live
// search signal. A missing table is logged and nothing is patched.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "table")
	signals := h.readSignals(r)
	sse := datastar.NewSSE(w, r)

	t, err := workspace.LoadTable(r.Context(), h.store, tableID)
	if err != nil {
		h.logger.Warn("search on unknown table", "table", tableID, "error", err)
		return
	}

	term := signals.SearchTerm(tableID)
	shown := table.Filter(t, term)
	h.logger.Debug("table filtered", "table", tableID, "term", term, "shown", shown)

	if err := common.PatchTable(sse, t); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Export downloads every row of a table as CSV, regardless of any filter.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	tableID := chi.URLParam(r, "table")

	t, err := workspace.LoadTable(r.Context(), h.store, tableID)
	if err != nil {
		h.logger.Warn("export of unknown table", "table", tableID, "error", err)
		http.Error(w, "table not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": table.Filename(r.URL.Query().Get("filename"), now),
	})
	if disposition == "" {
		h.logger.Warn("unusable export filename", "table", tableID, "filename", r.URL.Query().Get("filename"))
		disposition = mime.FormatMediaType("attachment", map[string]string{"filename": table.Filename("", now)})
	}
	w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)

	if err := table.WriteCSV(w, t); err != nil {
		h.logger.Error("failed to write export", "table", tableID, "error", err)
	}
}

// =============================================================================
// Modals
// =============================================================================

// OpenModal shows a create or advanced search modal. Edit and detail modals
// need a record and open through the record routes. Unknown ids are ignored.
func (h *Handlers) OpenModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sse := datastar.NewSSE(w, r)

	ref, ok := ParseModalID(id)
	if !ok {
		h.logger.Warn("modal not found", "modal", id)
		return
	}

	switch ref.Type {
	case ModalCreate:
		schema, _ := catalog.SchemaFor(ref.Kind)
		values := schema.Normalize(nil)
		err := h.patchForm(sse, components.FormModal{
			ID:     ref.ID(),
			Title:  "Crear " + titles[ref.Kind],
			Schema: schema,
			Values: values,
			Action: "@post('/records/" + string(ref.Kind) + "')",
			Submit: "Guardar",
		})
		if err != nil {
			_ = sse.ConsoleError(err)
		}

	case ModalSearch:
		if err := h.patchSearch(sse, ref.Kind); err != nil {
			_ = sse.ConsoleError(err)
		}

	default:
		h.logger.Debug("modal needs a record", "modal", id)
	}
}

// CloseModal hides modal id. Unknown ids are ignored.
func (h *Handlers) CloseModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sse := datastar.NewSSE(w, r)

	if _, ok := ParseModalID(id); !ok {
		h.logger.Warn("modal not found", "modal", id)
		return
	}
	if err := sse.PatchElementTempl(components.ModalHost()); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) patchForm(sse *datastar.ServerSentEventGenerator, m components.FormModal) error {
	if err := sse.MarshalAndPatchSignals(map[string]any{"form": m.Values}); err != nil {
		return err
	}
	return sse.PatchElementTempl(components.RecordForm(m))
}

func (h *Handlers) patchSearch(sse *datastar.ServerSentEventGenerator, kind catalog.Kind) error {
	schema, _ := catalog.SchemaFor(kind)

	var fields []catalog.Field
	empty := map[string]string{}
	for _, f := range schema.Fields {
		if f.Searchable {
			fields = append(fields, f)
			empty[f.Name] = ""
		}
	}

	if err := sse.MarshalAndPatchSignals(map[string]any{"search": empty}); err != nil {
		return err
	}
	return sse.PatchElementTempl(components.Search(components.SearchModal{
		ID:     workspace.SearchModalID(kind),
		Title:  common.SearchTitle(kind),
		Fields: fields,
		Action: "@post('/search/" + string(kind) + "')",
	}))
}

// =============================================================================
// Records
// =============================================================================

// Create validates the create form and adds the record.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	signals := h.readSignals(r)
	sse := datastar.NewSSE(w, r)
	ws := h.workspaces.Load(r)

	schema, _ := catalog.SchemaFor(kind)
	values := schema.Normalize(signals.Object("form"))

	if missing := schema.Validate(values); len(missing) > 0 {
		h.rejectForm(sse, components.FormModal{
			ID:     workspace.CreateModalID(kind),
			Title:  "Crear " + titles[kind],
			Schema: schema,
			Values: values,
			Action: "@post('/records/" + string(kind) + "')",
			Submit: "Guardar",
		}, missing)
		return
	}

	rec := &catalog.Record{Kind: kind, Values: values}
	if err := h.store.Create(r.Context(), rec); err != nil {
		h.storeFailed(sse, "create", kind, err)
		return
	}
	h.logger.Info("record created", "kind", kind, "id", rec.ID)

	_ = common.SendToast(sse, common.Capitalize(kind.Noun())+" creado exitosamente", components.SeveritySuccess)
	_ = common.SendToast(sse, "Nueva fila agregada a la tabla de "+kind.Noun()+"s", components.SeverityInfo)
	h.afterMutation(r.Context(), sse, ws, kind, signals)
}

// Show opens the detail modal of a record.
func (h *Handlers) Show(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	rec, err := h.store.Get(r.Context(), kind, id)
	if err != nil {
		h.storeFailed(sse, "show", kind, err)
		return
	}

	schema, _ := catalog.SchemaFor(kind)
	var items []components.DetailItem
	if schema.ShowID {
		items = append(items, components.DetailItem{Label: "ID", Value: strconv.FormatInt(rec.ID, 10)})
	}
	for _, f := range schema.Fields {
		items = append(items, components.DetailItem{Label: f.Label, Value: rec.Value(f.Name)})
	}

	err = sse.PatchElementTempl(components.Detail(components.DetailModal{
		ID:    ModalRef{Kind: kind, Type: ModalDetail}.ID(),
		Title: "Detalles del " + kind.Noun(),
		Items: items,
	}))
	if err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Edit opens the edit modal pre-populated from the stored record.
func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	rec, err := h.store.Get(r.Context(), kind, id)
	if err != nil {
		h.storeFailed(sse, "edit", kind, err)
		return
	}

	schema, _ := catalog.SchemaFor(kind)
	if err := h.patchForm(sse, editForm(schema, rec.ID, schema.Normalize(rec.Values))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func editForm(schema catalog.Schema, id int64, values map[string]string) components.FormModal {
	return components.FormModal{
		ID:     workspace.EditModalID(schema.Kind),
		Title:  "Editar " + titles[schema.Kind],
		Schema: schema,
		Values: values,
		Action: "@put('" + workspace.RecordURL(schema.Kind, id) + "')",
		Submit: "Actualizar",
	}
}

// Update validates the edit form and saves the record.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	signals := h.readSignals(r)
	sse := datastar.NewSSE(w, r)
	ws := h.workspaces.Load(r)

	schema, _ := catalog.SchemaFor(kind)
	values := schema.Normalize(signals.Object("form"))

	if missing := schema.Validate(values); len(missing) > 0 {
		h.rejectForm(sse, editForm(schema, id, values), missing)
		return
	}

	rec := &catalog.Record{ID: id, Kind: kind, Values: values}
	if err := h.store.Update(r.Context(), rec); err != nil {
		h.storeFailed(sse, "update", kind, err)
		return
	}
	h.logger.Info("record updated", "kind", kind, "id", id)

	_ = common.SendToast(sse, common.Capitalize(kind.Noun())+" actualizado exitosamente", components.SeveritySuccess)
	h.afterMutation(r.Context(), sse, ws, kind, signals)
}

// Delete removes a record. The client asks for confirmation first.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.recordParams(w, r)
	if !ok {
		return
	}
	signals := h.readSignals(r)
	sse := datastar.NewSSE(w, r)
	ws := h.workspaces.Load(r)

	if err := h.store.Delete(r.Context(), kind, id); err != nil {
		h.storeFailed(sse, "delete", kind, err)
		return
	}
	h.logger.Info("record deleted", "kind", kind, "id", id)

	_ = common.SendToast(sse, common.Capitalize(kind.Noun())+" eliminado exitosamente", components.SeveritySuccess)
	h.afterMutation(r.Context(), sse, ws, kind, signals)
}

// AdvancedSearch applies the search modal's per-field filters on top of the
// live search term and reports how many filters were used.
func (h *Handlers) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	signals := h.readSignals(r)
	sse := datastar.NewSSE(w, r)

	tableID, _ := workspace.TableForKind(kind)
	t, err := workspace.LoadTable(r.Context(), h.store, tableID)
	if err != nil {
		h.storeFailed(sse, "search", kind, err)
		return
	}

	filters := make(map[int]string)
	for name, value := range signals.Object("search") {
		if value == "" {
			continue
		}
		col := workspace.ColumnIndex(kind, name)
		if col < 0 {
			h.logger.Warn("search on unknown field", "kind", kind, "field", name)
			continue
		}
		filters[col] = value
	}
	used := len(filters)

	table.Filter(t, signals.SearchTerm(tableID))
	table.FilterFields(t, filters)

	_ = sse.PatchElementTempl(components.ModalHost())
	_ = common.PatchTable(sse, t)
	_ = common.SendToast(sse, "Búsqueda realizada con "+strconv.Itoa(used)+" filtros", components.SeveritySuccess)
}

// =============================================================================
// Helpers
// =============================================================================

// readSignals reads the request's signals. Requests without signals yield an
// empty set. It must run before the SSE generator is created.
func (h *Handlers) readSignals(r *http.Request) Signals {
	signals := Signals{}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.logger.Debug("request without signals", "path", r.URL.Path, "error", err)
		return Signals{}
	}
	return signals
}

func (h *Handlers) kindParam(w http.ResponseWriter, r *http.Request) (catalog.Kind, bool) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.logger.Warn("unknown record kind", "error", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return kind, true
}

func (h *Handlers) recordParams(w http.ResponseWriter, r *http.Request) (catalog.Kind, int64, bool) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.logger.Warn("invalid record id", "id", chi.URLParam(r, "id"))
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return "", 0, false
	}
	return kind, id, true
}

// rejectForm re-renders a form with its missing fields marked invalid.
func (h *Handlers) rejectForm(sse *datastar.ServerSentEventGenerator, m components.FormModal, missing []string) {
	m.Invalid = make(map[string]bool, len(missing))
	for _, name := range missing {
		m.Invalid[name] = true
	}
	_ = common.SendToast(sse, "Por favor complete todos los campos requeridos", components.SeverityError)
	if err := sse.PatchElementTempl(components.RecordForm(m)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) storeFailed(sse *datastar.ServerSentEventGenerator, op string, kind catalog.Kind, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		h.logger.Warn("record not found", "op", op, "kind", kind, "error", err)
		_ = common.SendToast(sse, common.Capitalize(kind.Noun())+" no encontrado", components.SeverityError)
		return
	}
	h.logger.Error("catalog operation failed", "op", op, "kind", kind, "error", err)
	_ = common.SendToast(sse, common.StoreError, components.SeverityError)
}

// afterMutation closes the modal, re-renders the changed table with the
// session's live filter, refreshes the counters and tells other sessions.
func (h *Handlers) afterMutation(ctx context.Context, sse *datastar.ServerSentEventGenerator, ws *workspace.Workspace, kind catalog.Kind, signals Signals) {
	_ = sse.PatchElementTempl(components.ModalHost())

	tableID, _ := workspace.TableForKind(kind)
	t, err := workspace.LoadTable(ctx, h.store, tableID)
	if err != nil {
		h.logger.Error("failed to reload table", "table", tableID, "error", err)
	} else {
		table.Filter(t, signals.SearchTerm(tableID))
		_ = common.PatchTable(sse, t)
	}

	if stats, err := common.BuildStats(ctx, h.store); err == nil {
		_ = sse.PatchElementTempl(components.Stats(stats))
	}

	h.notifier.BroadcastExcept(ws.ID)
}
