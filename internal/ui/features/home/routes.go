package home

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/ui/notifier"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(
	router chi.Router,
	store catalog.Store,
	workspaces *workspace.Manager,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(store, workspaces, notify, logger, isDev)

	router.Get("/", handlers.HomePage)
	router.Get("/updates", handlers.HomePageUpdates)
	router.Post("/nav/{page}", handlers.Navigate)

	router.Route("/sidebar", func(r chi.Router) {
		r.Post("/toggle", handlers.ToggleSidebar)
		r.Post("/open", handlers.OpenSidebar)
		r.Post("/close", handlers.CloseSidebar)
		r.Post("/pointerdown", handlers.PointerDown)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Post("/tickets/search", handlers.TicketSearch)
		r.Post("/routes/search", handlers.RouteSearch)
	})

	return nil
}
