package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/cli/config"
	"github.com/konnectpro/konnectpro-gds/internal/cli/output"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *catalog.SQLiteStore
	Renderer *output.Renderer
}

// NewCommandContext opens and seeds the catalog and creates the renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openCatalog(cmd.Context(), cfg.Catalog, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Renderer: r,
	}, cleanup, nil
}

// getConfig returns the current configuration.
func getConfig() *config.Config {
	return config.GetCurrentConfig()
}

// openCatalog opens the store at cfg.DSN, migrates it and loads the seed file,
// or the embedded seed when none is configured.
func openCatalog(ctx context.Context, cfg config.CatalogConfig, logger *slog.Logger) (*catalog.SQLiteStore, error) {
	store := catalog.NewSQLiteStore(logger)
	if err := store.Open(cfg.DSN); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}

	seed := catalog.DefaultSeed()
	if cfg.SeedFile != "" {
		var err error
		if seed, err = catalog.LoadSeedFile(cfg.SeedFile); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	if err := seed.Apply(ctx, store); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Debug("catalog ready", "dsn", cfg.DSN, "seed_file", cfg.SeedFile)
	return store, nil
}

// tablePages returns the ids of the pages that list a table.
func tablePages() []string {
	var ids []string
	for _, p := range nav.DefaultPages() {
		if _, ok := nav.TableFor(string(p.ID)); ok {
			ids = append(ids, string(p.ID))
		}
	}
	return ids
}

// loadPageTable builds the table of page. A table id is accepted too.
func loadPageTable(ctx context.Context, store catalog.Store, page string) (*table.Table, error) {
	if _, ok := workspace.KindForTable(page); ok {
		return workspace.LoadTable(ctx, store, page)
	}
	t, err := workspace.LoadPageTable(ctx, store, page)
	if err != nil {
		return nil, fmt.Errorf("%w\nHint: use one of %s", err, strings.Join(tablePages(), ", "))
	}
	return t, nil
}

// completePages offers page ids for the first argument.
func completePages(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return tablePages(), cobra.ShellCompDirectiveNoFileComp
}
