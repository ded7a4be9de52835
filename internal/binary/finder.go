package binary

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a Finder. The zero value discovers the default tool on
// the running platform without a cache.
type Options struct {
	// Platform overrides the traits of the running OS.
	Platform *Platform
	Tool     string
	// VersionArg replaces the platform's liveness probe argument.
	VersionArg string
	Runner     Runner
	// Store backs the installation cache. Nil disables caching.
	Store        KeyValueStore
	ExtraPaths   []string
	ProbeWorkers int
	ProbeTimeout time.Duration
	Reporter     ProbeReporter
	Logger       *log.Logger
}

// Finder owns everything one caller needs to locate the tool.
type Finder struct {
	platform   Platform
	prober     *Prober
	discoverer *Discoverer
	cache      *Cache
	reporter   ProbeReporter
	logger     *log.Logger
}

func NewFinder(opts Options) *Finder {
	logger := orDiscard(opts.Logger)

	var platform Platform
	if opts.Platform != nil {
		platform = *opts.Platform
	} else {
		platform = CurrentPlatform(opts.Tool)
	}
	if opts.VersionArg != "" {
		platform.VersionArg = opts.VersionArg
	}

	runner := opts.Runner
	if runner == nil {
		runner = CmdRunner{}
	}
	prober := NewProber(platform, runner, logger)
	prober.Timeout = opts.ProbeTimeout

	extras := make([]Candidate, 0, len(opts.ExtraPaths))
	for _, path := range opts.ExtraPaths {
		if path == "" {
			continue
		}
		extras = append(extras, Candidate{Path: path, Source: SourceConfig, Type: Custom})
	}

	f := &Finder{
		platform: platform,
		prober:   prober,
		discoverer: &Discoverer{
			Platform:   platform,
			Runner:     runner,
			Prober:     prober,
			ExtraPaths: extras,
			Workers:    opts.ProbeWorkers,
			Logger:     logger,
		},
		reporter: opts.Reporter,
		logger:   logger,
	}
	if opts.Store != nil {
		f.cache = &Cache{Store: opts.Store, Prober: prober, Logger: logger}
	}
	return f
}

// Platform returns the traits the finder was built with.
func (f *Finder) Platform() Platform {
	return f.platform
}

// Selection is what Locate settled on.
type Selection struct {
	Installation
	// Cached is set when the path came from a valid cache entry rather
	// than a fresh discovery.
	Cached bool `json:"cached"`
}

// Find returns one working path: the cached one when it is still valid,
// otherwise the best freshly discovered installation, which is then cached.
func (f *Finder) Find(ctx context.Context) (string, error) {
	sel, err := f.Locate(ctx)
	if err != nil {
		return "", err
	}
	return sel.Path, nil
}

// Locate is Find that also returns the chosen installation and whether it
// was served from the cache.
func (f *Finder) Locate(ctx context.Context) (Selection, error) {
	f.logger.Info("searching for installation", "tool", f.platform.Tool)

	if f.cache != nil {
		if pref, err := f.cache.Preference(ctx); err != nil {
			f.logger.Warn("read installation preference", "err", err)
		} else {
			f.logger.Info("installation preference", "preference", pref)
		}

		inst, ok, err := f.cache.Lookup(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return Selection{}, ctx.Err()
		case err != nil:
			f.logger.Warn("installation cache unavailable, discovering", "err", err)
		case ok:
			return Selection{Installation: inst, Cached: true}, nil
		}
	}

	installs, err := f.discoverer.Discover(ctx, f.reporter)
	if err != nil {
		return Selection{}, err
	}
	f.logger.Info("discovery finished", "installations", len(installs))

	best, ok := Select(installs)
	if !ok {
		f.logger.Error("no installation found", "tool", f.platform.Tool)
		return Selection{}, f.notFound()
	}
	f.logger.Info("selected installation",
		"path", best.Path, "version", best.Version, "source", best.Source)

	if f.cache != nil {
		if err := f.cache.Write(ctx, best.Path); err != nil {
			f.logger.Warn("store selected installation", "err", err)
		}
	}
	return Selection{Installation: best}, nil
}

// DiscoverAll lists every working installation in display order without
// touching the cache. The only error is the context's.
func (f *Finder) DiscoverAll(ctx context.Context) ([]Installation, error) {
	installs, err := f.discoverer.Discover(ctx, f.reporter)
	if err != nil {
		return nil, err
	}
	if len(installs) == 0 {
		return []Installation{}, nil
	}
	return SortForDisplay(installs), nil
}

// Use probes a user-chosen path and stores it as the cached choice.
func (f *Finder) Use(ctx context.Context, path string) (Installation, error) {
	if path == "" {
		return Installation{}, errors.New("path is required")
	}
	if !isBareName(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if !isRegularFile(path) {
			return Installation{}, fmt.Errorf("%s is not a file", path)
		}
	}

	result := f.prober.Probe(ctx, path)
	if err := ctx.Err(); err != nil {
		return Installation{}, err
	}
	if !result.Functional {
		return Installation{}, fmt.Errorf("%s did not run successfully with %s", path, f.platform.VersionArg)
	}

	inst := Installation{Path: path, Version: result.Version, Source: SourceCustom, Type: Custom}
	if f.cache == nil {
		return inst, fmt.Errorf("%w: caching disabled", ErrCacheUnavailable)
	}
	if err := f.cache.Write(ctx, path); err != nil {
		return inst, err
	}
	f.logger.Info("stored installation", "path", path, "version", result.Version)
	return inst, nil
}

// Cached returns the stored path without validating it.
func (f *Finder) Cached(ctx context.Context) (string, error) {
	if f.cache == nil {
		return "", fmt.Errorf("%w: caching disabled", ErrCacheUnavailable)
	}
	return f.cache.Peek(ctx)
}

// Preference returns the stored installation preference.
func (f *Finder) Preference(ctx context.Context) (string, error) {
	if f.cache == nil {
		return DefaultPreference, nil
	}
	return f.cache.Preference(ctx)
}

// ClearCache forgets the stored path.
func (f *Finder) ClearCache(ctx context.Context) error {
	if f.cache == nil {
		return nil
	}
	return f.cache.Clear(ctx)
}

// Probe runs the liveness probe against a single path.
func (f *Finder) Probe(ctx context.Context, path string) ProbeResult {
	return f.prober.Probe(ctx, path)
}

// Environment returns the environment a child process for program would get.
func (f *Finder) Environment(program string) map[string]string {
	return f.prober.Env.Build(program)
}

func (f *Finder) notFound() error {
	return &NotFoundError{Tool: f.platform.Tool, Locations: f.platform.ExpectedLocations()}
}
