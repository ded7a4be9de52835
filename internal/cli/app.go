package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"claudefinder/internal/binary"
	"claudefinder/internal/config"
	"claudefinder/internal/logx"
	"claudefinder/internal/paths"
	"claudefinder/internal/settings"
)

// appContext is what every command needs after flags are parsed.
type appContext struct {
	paths  paths.AppPaths
	cfg    config.Config
	logger *log.Logger
	closer io.Closer
	store  *settings.Store
}

func loadApp(cmd *cobra.Command) (*appContext, error) {
	ap, err := paths.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(ap.ConfigFile)
	if err != nil {
		return nil, err
	}
	if results := cfg.Validate(); config.HasErrors(results) {
		return nil, validationError(ap.ConfigFile, results)
	}
	ap = paths.ApplyConfig(ap, cfg)

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logDir := ""
	if cfg.Log.Dir != "" {
		logDir = ap.LogsDir
	}
	logger, closer, err := logx.New(logx.Options{
		Level:  level,
		Dir:    logDir,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	app := &appContext{paths: ap, cfg: cfg, logger: logger, closer: closer}
	if cfg.CacheEnabled() {
		app.store = settings.NewStore(ap.DatabaseFile)
	}
	return app, nil
}

func validationError(path string, results []config.ValidationResult) error {
	var errs []error
	for _, r := range results {
		if r.Level == "error" {
			errs = append(errs, errors.New(r.Message))
		}
	}
	return fmt.Errorf("invalid config %s: %w", path, errors.Join(errs...))
}

func (a *appContext) Close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// finder builds a Finder from the loaded configuration. reporter may be nil.
func (a *appContext) finder(reporter binary.ProbeReporter) (*binary.Finder, error) {
	timeout, err := a.cfg.ProbeTimeout()
	if err != nil {
		return nil, err
	}
	opts := binary.Options{
		Platform:     platformOverride,
		Tool:         a.cfg.Tool.Name,
		VersionArg:   a.cfg.Tool.VersionArg,
		Runner:       runnerOverride,
		ExtraPaths:   a.cfg.Discovery.ExtraPaths,
		ProbeWorkers: a.cfg.Discovery.ProbeWorkers,
		ProbeTimeout: timeout,
		Reporter:     reporter,
		Logger:       a.logger,
	}
	if a.store != nil {
		opts.Store = a.store
	}
	return binary.NewFinder(opts), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
