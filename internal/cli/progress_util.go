package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
	"claudefinder/internal/tui"
)

// runDiscovery hands fn a Finder. On an interactive terminal its probes feed
// a live progress table; otherwise a spinner line is drawn on stderr when
// stderr is a terminal.
func runDiscovery(cmd *cobra.Command, app *appContext, title string, fn func(ctx context.Context, f *binary.Finder) error) error {
	ctx := commandContext(cmd)

	if tui.DetectMode(cmd.OutOrStdout(), noProgress, outputJSON) != tui.ModeTUI {
		f, err := app.finder(nil)
		if err != nil {
			return err
		}
		if noProgress {
			return fn(ctx, f)
		}
		return tui.WithStatus(cmd.ErrOrStderr(), title, func() error {
			return fn(ctx, f)
		})
	}

	model := tui.NewProgressModel(title, tui.ProbeColumns())
	return tui.RunWithWork(ctx, cmd.OutOrStdout(), model, func(ctx context.Context, send func(tea.Msg)) error {
		f, err := app.finder(tui.NewProbeReporter(send))
		if err != nil {
			return err
		}
		return fn(ctx, f)
	})
}
