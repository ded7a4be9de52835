package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
	"claudefinder/internal/config"
	"claudefinder/internal/paths"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, cache and installations",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ap, err := paths.Resolve(configPath)
	if err != nil {
		return err
	}

	var checks []healthCheck

	cfg, cfgErr := config.Load(ap.ConfigFile)
	checks = append(checks, checkConfig(cfg, cfgErr))
	if cfgErr != nil || config.HasErrors(cfg.Validate()) {
		// Nothing else can be built from a broken config.
		return writeDoctorResult(cmd, ap.ConfigFile, checks)
	}

	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	var (
		cacheCheck   healthCheck
		installCheck healthCheck
		envCheck     healthCheck
	)
	err = runDiscovery(cmd, app, "Checking installations", func(ctx context.Context, f *binary.Finder) error {
		cacheCheck = checkCache(ctx, app, f)
		var best string
		installCheck, best = checkInstallations(ctx, f)
		envCheck = checkEnvironment(f, best)
		return nil
	})
	if err != nil {
		return err
	}
	checks = append(checks, cacheCheck, installCheck, envCheck)

	return writeDoctorResult(cmd, ap.ConfigFile, checks)
}

func checkConfig(cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	var warnings, errors int
	for _, v := range cfg.Validate() {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errors++
		}
	}

	summary := fmt.Sprintf("tool %q, %d extra paths", cfg.Tool.Name, len(cfg.Discovery.ExtraPaths))

	if errors > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %d errors", summary, errors)}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %d warnings", summary, warnings)}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkCache(ctx context.Context, app *appContext, f *binary.Finder) healthCheck {
	if app.store == nil {
		return healthCheck{Name: "Cache", Status: "ok", Summary: "disabled"}
	}

	path, err := f.Cached(ctx)
	if err != nil {
		return healthCheck{Name: "Cache", Status: "error", Summary: err.Error()}
	}
	if path == "" {
		return healthCheck{Name: "Cache", Status: "warning", Summary: "no cached installation"}
	}

	res := f.Probe(ctx, path)
	if !res.Functional {
		return healthCheck{Name: "Cache", Status: "warning", Summary: fmt.Sprintf("%s no longer runs", path)}
	}
	return healthCheck{Name: "Cache", Status: "ok", Summary: joinComma(nonEmpty(path, res.Version))}
}

func checkInstallations(ctx context.Context, f *binary.Finder) (healthCheck, string) {
	installs, err := f.DiscoverAll(ctx)
	if err != nil {
		return healthCheck{Name: "Installs", Status: "error", Summary: err.Error()}, ""
	}

	best, ok := binary.Select(installs)
	if !ok {
		p := f.Platform()
		return healthCheck{
			Name:    "Installs",
			Status:  "error",
			Summary: fmt.Sprintf("none found in %s", joinComma(p.ExpectedLocations())),
		}, ""
	}

	summary := fmt.Sprintf("%d found; best %s", len(installs), joinComma(nonEmpty(best.Path, best.Version)))
	return healthCheck{Name: "Installs", Status: "ok", Summary: summary}, best.Path
}

func checkEnvironment(f *binary.Finder, program string) healthCheck {
	env := f.Environment(program)
	p := f.Platform()

	var pathValue string
	for k, v := range env {
		if strings.EqualFold(k, "PATH") {
			pathValue = v
			break
		}
	}
	if pathValue == "" {
		return healthCheck{Name: "Env", Status: "warning", Summary: fmt.Sprintf("%d variables, PATH is empty", len(env))}
	}
	entries := len(strings.Split(pathValue, p.ListSeparator))
	return healthCheck{
		Name:    "Env",
		Status:  "ok",
		Summary: fmt.Sprintf("%d variables, %d PATH entries", len(env), entries),
	}
}

func writeDoctorResult(cmd *cobra.Command, configFile string, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("HEALTH:")+" "+configFile)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinComma(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += ", " + item
	}
	return result
}
