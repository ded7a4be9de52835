package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
	"claudefinder/internal/tui"
)

func newChooseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choose",
		Short: "Pick the installation to use from an interactive list",
		Args:  cobra.NoArgs,
		RunE:  runChoose,
	}
}

func runChoose(cmd *cobra.Command, _ []string) error {
	if outputJSON || !tui.IsTerminal(cmd.OutOrStdout()) {
		return errors.New("choose needs an interactive terminal; use \"claudefinder use <path>\" instead")
	}

	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var (
		finder   *binary.Finder
		installs []binary.Installation
		cached   string
	)
	err = runDiscovery(cmd, app, "Probing installations", func(ctx context.Context, f *binary.Finder) error {
		finder = f
		cached, _ = f.Cached(ctx)
		var err error
		installs, err = f.DiscoverAll(ctx)
		return err
	})
	if err != nil {
		return err
	}
	if len(installs) == 0 {
		p := finder.Platform()
		return &binary.NotFoundError{Tool: p.Tool, Locations: p.ExpectedLocations()}
	}

	chosen, ok, err := tui.RunChooser(cmd.InOrStdin(), cmd.OutOrStdout(), installs, cached)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.ErrOrStderr(), "No change.")
		return nil
	}

	inst, err := finder.Use(commandContext(cmd), chosen.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Using %s %s\n",
		tui.PathStyle.Render(inst.Path), tui.VersionStyle.Render(tui.NonEmptyOrDash(inst.Version)))
	return nil
}
