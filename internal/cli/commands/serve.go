package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/konnectpro/konnectpro-gds/internal/cli/config"
	"github.com/konnectpro/konnectpro-gds/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	NoBrowser bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the KonnectPro-GDS dashboard",
		Long: `Start a local web server with the back-office dashboard.

The dashboard provides:
- Record counts, ticket search and route search
- Destinations, boarding stages and their operator mappings
- Live search, CSV export and create/edit/delete modals

Records live in memory and are seeded from the embedded data or --seed-file.
With --watch, edits to the seed file reload the catalog and refresh open pages.`,
		Example: `  # Start on the default port
  konnectpro serve

  # Start on a custom port with a seed file that reloads on change
  konnectpro serve --port 3000 --seed-file seed.yaml --watch

  # Start without opening a browser
  konnectpro serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().Int("port", config.DefaultPort, "Port to serve on")
	cmd.Flags().String("host", "", "Interface to bind (default: all)")
	cmd.Flags().String("seed-file", "", "YAML file with the initial records")
	cmd.Flags().Bool("watch", true, "Reload the seed file when it changes")
	cmd.Flags().Bool("dev", false, "Enable hot reload endpoints")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	server := ui.NewServer(ui.Config{
		Store:         cmdCtx.Store,
		Host:          cfg.UI.Host,
		Port:          cfg.UI.Port,
		SessionSecret: cfg.UI.SessionSecret,
		SeedFile:      cfg.Catalog.SeedFile,
		Watch:         cfg.UI.Watch,
		Dev:           cfg.UI.Dev,
		Logger:        cmdCtx.Logger,
	})

	if cfg.UI.SessionSecret == config.DefaultSessionSecret {
		cmdCtx.Logger.Warn("using the development session secret; set ui.session_secret for shared deployments")
	}

	// Open browser if configured
	if cfg.UI.AutoOpen && !opts.NoBrowser {
		go openBrowser(server.URL())
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting KonnectPro-GDS on %s\n", server.URL())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
