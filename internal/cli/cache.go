package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the cached installation",
	}

	cmd.AddCommand(newCacheShowCmd())
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

func newCacheShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cached path without validating it",
		Args:  cobra.NoArgs,
		RunE:  runCacheShow,
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the cached path",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	}
}

type cacheStatus struct {
	Enabled    bool   `json:"enabled"`
	Database   string `json:"database"`
	Path       string `json:"path,omitempty"`
	Preference string `json:"preference"`
	// Settings holds every row of the settings table, including keys owned
	// by other applications sharing the database.
	Settings map[string]string `json:"settings,omitempty"`
}

func runCacheShow(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := commandContext(cmd)
	f, err := app.finder(nil)
	if err != nil {
		return err
	}

	status := cacheStatus{Enabled: app.store != nil, Database: app.paths.DatabaseFile}
	if status.Enabled {
		if status.Path, err = f.Cached(ctx); err != nil {
			return err
		}
		if status.Settings, err = app.store.All(ctx); err != nil {
			return fmt.Errorf("list settings: %w", err)
		}
	}
	if status.Preference, err = f.Preference(ctx); err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	enabled := "yes"
	if !status.Enabled {
		enabled = "no"
	}
	fmt.Fprintf(out, "Enabled:    %s\n", enabled)
	fmt.Fprintf(out, "Database:   %s\n", status.Database)
	fmt.Fprintf(out, "Path:       %s\n", nonEmptyOrNone(status.Path))
	fmt.Fprintf(out, "Preference: %s\n", status.Preference)
	if len(status.Settings) > 0 {
		fmt.Fprintln(out, "Settings:")
		keys := make([]string, 0, len(status.Settings))
		for k := range status.Settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s = %s\n", k, status.Settings[k])
		}
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	f, err := app.finder(nil)
	if err != nil {
		return err
	}
	if err := f.ClearCache(commandContext(cmd)); err != nil {
		return err
	}
	if !outputJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared cached installation.")
	}
	return nil
}

func nonEmptyOrNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}
