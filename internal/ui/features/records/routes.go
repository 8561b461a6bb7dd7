package records

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/ui/notifier"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// SetupRoutes registers the catalog data page routes.
func SetupRoutes(
	router chi.Router,
	store catalog.Store,
	workspaces *workspace.Manager,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(store, workspaces, notify, logger)

	router.Route("/tables/{table}", func(r chi.Router) {
		r.Get("/search", handlers.Search)
		r.Get("/export", handlers.Export)
	})

	router.Route("/modals/{id}", func(r chi.Router) {
		r.Post("/open", handlers.OpenModal)
		r.Post("/close", handlers.CloseModal)
	})

	router.Route("/records/{kind}", func(r chi.Router) {
		r.Post("/", handlers.Create)
		r.Get("/{id}", handlers.Show)
		r.Get("/{id}/edit", handlers.Edit)
		r.Put("/{id}", handlers.Update)
		r.Delete("/{id}", handlers.Delete)
	})

	router.Post("/search/{kind}", handlers.AdvancedSearch)

	return nil
}
