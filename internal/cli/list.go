package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
	"claudefinder/internal/tui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every working installation, best first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var (
		installs []binary.Installation
		cached   string
	)
	err = runDiscovery(cmd, app, "Probing installations", func(ctx context.Context, f *binary.Finder) error {
		cached, _ = f.Cached(ctx)
		var err error
		installs, err = f.DiscoverAll(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(installs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	writeInstallTable(cmd.OutOrStdout(), installs, cached)
	return nil
}

func writeInstallTable(out io.Writer, installs []binary.Installation, cached string) {
	if len(installs) == 0 {
		fmt.Fprintln(out, "(no installations found)")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSOURCE\tTYPE\tPATH\t")
	for _, inst := range installs {
		marker := ""
		if inst.Path == cached {
			marker = "(cached)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tui.NonEmptyOrDash(inst.Version), inst.Source, inst.Type, inst.Path, marker)
	}
	tw.Flush()
}
