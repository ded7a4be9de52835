package binary

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ProbeResult is the outcome of one liveness probe. The zero value means the
// candidate is not usable.
type ProbeResult struct {
	Functional bool
	Version    string
}

// Prober runs a candidate with the version argument and reports whether it
// exited cleanly.
type Prober struct {
	Platform Platform
	Runner   Runner
	Env      EnvBuilder
	// Timeout bounds a single probe. Zero waits for the child to exit.
	Timeout time.Duration
	Logger  *log.Logger
}

// NewProber wires a prober for platform using runner.
func NewProber(platform Platform, runner Runner, logger *log.Logger) *Prober {
	if runner == nil {
		runner = CmdRunner{}
	}
	return &Prober{
		Platform: platform,
		Runner:   runner,
		Env:      EnvBuilder{Platform: platform},
		Logger:   orDiscard(logger),
	}
}

// Probe spawns path with the version argument. Spawn errors, non-zero exits
// and cancellation all yield a non-functional result.
func (p *Prober) Probe(ctx context.Context, path string) ProbeResult {
	if path == "" {
		return ProbeResult{}
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	opts := RunOptions{
		Env:        p.Env.Environ(path),
		HideWindow: p.Platform.HideWindow,
	}
	result, err := p.Runner.Run(ctx, path, []string{p.Platform.VersionArg}, opts)
	if err != nil {
		p.Logger.Debug("probe failed", "path", path, "err", err)
		return ProbeResult{}
	}

	version, ok := ExtractVersion(result.Stdout)
	if !ok {
		p.Logger.Debug("probe succeeded without version", "path", path)
		return ProbeResult{Functional: true}
	}
	p.Logger.Debug("probe succeeded", "path", path, "version", version)
	return ProbeResult{Functional: true, Version: version}
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
