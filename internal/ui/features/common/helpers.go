package common

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features/common/components"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// GenericError is shown when a request fails unexpectedly.
const GenericError = "Ha ocurrido un error. Por favor, recarga la página."

// StoreError is shown when the catalog cannot complete an operation.
const StoreError = "Error en la aplicación. Contacte al soporte técnico."

// BuildAppData assembles the application shell for ws.
func BuildAppData(ctx context.Context, store catalog.Store, ws *workspace.Workspace) (components.AppData, error) {
	app := components.AppData{
		Menu:        ws.Router.MenuItems(),
		SidebarOpen: ws.Router.IsSidebarOpen(),
		SidebarIcon: ws.Router.SidebarIcon(),
	}

	stats, err := BuildStats(ctx, store)
	if err != nil {
		return app, err
	}
	app.Stats = stats

	for _, page := range ws.Router.Pages() {
		pv := components.PageView{Page: page, Visible: ws.Router.Visible(page.ID)}
		if kind, ok := PageKind(page.ID); ok {
			section, err := BuildSection(ctx, store, ws, kind)
			if err != nil {
				return app, err
			}
			pv.Section = &section
		}
		app.Pages = append(app.Pages, pv)
	}
	return app, nil
}

// BuildSection assembles the table section of kind with its current header.
func BuildSection(ctx context.Context, store catalog.Store, ws *workspace.Workspace, kind catalog.Kind) (components.SectionView, error) {
	tableID, ok := workspace.TableForKind(kind)
	if !ok {
		return components.SectionView{}, fmt.Errorf("no table lists %s", kind)
	}

	t, err := workspace.LoadTable(ctx, store, tableID)
	if err != nil {
		return components.SectionView{}, err
	}

	header, _ := ws.Controls.Header(tableID)
	return components.SectionView{
		Kind:          kind,
		Header:        header,
		Table:         t,
		SearchButton:  searchButtons[kind],
		SearchModalID: workspace.SearchModalID(kind),
	}, nil
}

// BuildStats counts the records of every kind.
func BuildStats(ctx context.Context, store catalog.Store) (components.DashboardStats, error) {
	var stats components.DashboardStats
	counters := []struct {
		kind catalog.Kind
		dst  *int
	}{
		{catalog.KindDestination, &stats.Destinations},
		{catalog.KindDestinationMapping, &stats.DestinationMappings},
		{catalog.KindBoardingStage, &stats.BoardingStages},
		{catalog.KindBoardingMapping, &stats.BoardingMappings},
	}
	for _, c := range counters {
		n, err := store.Count(ctx, c.kind)
		if err != nil {
			return stats, err
		}
		*c.dst = n
	}
	return stats, nil
}

// SendToast appends a notification to the toast container.
func SendToast(sse *datastar.ServerSentEventGenerator, message string, severity components.Severity) error {
	return sse.PatchElementTempl(
		components.Toast(components.NewToast(message, severity)),
		datastar.WithSelectorID(components.ToastsID),
		datastar.WithModeAppend(),
	)
}

// PatchSidebar re-renders the sidebar, its toggle and the sidebarOpen signal.
func PatchSidebar(sse *datastar.ServerSentEventGenerator, router *nav.Router) error {
	if err := sse.PatchElementTempl(components.Sidebar(router.MenuItems(), router.IsSidebarOpen())); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.SidebarToggle(router.SidebarIcon())); err != nil {
		return err
	}
	return sse.MarshalAndPatchSignals(map[string]any{"sidebarOpen": router.IsSidebarOpen()})
}

// PatchTable re-renders the body of t.
func PatchTable(sse *datastar.ServerSentEventGenerator, t *table.Table) error {
	return sse.PatchElementTempl(components.TableBody(t))
}

// Capitalize upper-cases the first letter of a Spanish phrase, e.g. "etapa de
// embarque" becomes "Etapa de embarque".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Title(language.Spanish).String(string(r)) + s[size:]
}
