package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// Execute runs the binmeta CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "binmeta",
		Short:        "binmeta works with hash-keyed binary property trees",
		Long:         "binmeta computes the stable name hashes used by the asset container format, resolves them back through name dictionaries, and inspects property trees in their JSON projection.",
		Version:      version + " (" + commit + ")",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newHashCmd())
	root.AddCommand(newLookupCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}
