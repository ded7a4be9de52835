package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"claudefinder/internal/tui"
)

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <path>",
		Short: "Validate a path and store it as the cached choice",
		Args:  cobra.ExactArgs(1),
		RunE:  runUse,
	}
}

func runUse(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	f, err := app.finder(nil)
	if err != nil {
		return err
	}
	inst, err := f.Use(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(inst, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Using %s %s\n",
		tui.PathStyle.Render(inst.Path), tui.VersionStyle.Render(tui.NonEmptyOrDash(inst.Version)))
	return nil
}
