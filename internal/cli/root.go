package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
)

var (
	configPath string
	outputJSON bool
	verbose    bool
	noProgress bool
)

// Tests replace these to keep discovery away from the host machine.
var (
	platformOverride *binary.Platform
	runnerOverride   binary.Runner
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "claudefinder",
		Short:         "Locate, validate and cache Claude Code installations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log discovery details to stderr")
	cmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable the interactive progress table")

	cmd.AddCommand(newFindCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newChooseCmd())
	cmd.AddCommand(newUseCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newEnvCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}
