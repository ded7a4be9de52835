package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
)

var findRefresh bool

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Print the path of one working installation",
		Long: "Print the path of one working installation. The cached choice is used " +
			"while it still runs; otherwise every known location is probed and the best " +
			"installation is selected and cached.",
		Args: cobra.NoArgs,
		RunE: runFind,
	}
	cmd.Flags().BoolVar(&findRefresh, "refresh", false, "Ignore and replace the cached choice")
	return cmd
}

func runFind(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var result binary.Selection
	err = runDiscovery(cmd, app, "Searching for Claude Code", func(ctx context.Context, f *binary.Finder) error {
		if findRefresh {
			if err := f.ClearCache(ctx); err != nil {
				app.logger.Warn("clear installation cache", "err", err)
			}
		}
		sel, err := f.Locate(ctx)
		if err != nil {
			return err
		}
		result = sel
		return nil
	})
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Path)
	return nil
}
