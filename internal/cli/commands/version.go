package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
)

// NewVersionCommand reports the build of the konnectpro binary.
func NewVersionCommand(version string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the konnectpro build",
		Long: `Print the KonnectPro-GDS release, the Go runtime it was built with and the
record kinds its catalog serves. Use --short for the bare version string.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, version)
				return
			}

			_, _ = fmt.Fprintf(out, "KonnectPro-GDS v%s\n", version)
			_, _ = fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(out, "  catalog:  %d record kinds\n", len(catalog.Kinds()))
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	return cmd
}
