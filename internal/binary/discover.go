package binary

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ProbeReporter observes liveness probes as they run. Calls may arrive from
// several goroutines when probing is concurrent.
type ProbeReporter interface {
	ProbeStarted(index int, c Candidate)
	ProbeFinished(index int, c Candidate, result ProbeResult)
}

// Discoverer runs every enumerator, deduplicates the candidates and keeps the
// ones that pass the liveness probe.
type Discoverer struct {
	Platform Platform
	Runner   Runner
	Prober   *Prober
	// ExtraPaths are user-configured locations enumerated after all others.
	ExtraPaths []Candidate
	// Workers bounds concurrent probes. Values below 2 probe sequentially.
	Workers int
	Logger  *log.Logger
}

// pass holds the state of one discovery run.
type pass struct {
	d *Discoverer

	mu   sync.Mutex
	memo map[string]ProbeResult
}

func (d *Discoverer) newPass() *pass {
	resolved := *d
	if resolved.Runner == nil {
		resolved.Runner = CmdRunner{}
	}
	resolved.Logger = orDiscard(resolved.Logger)
	if resolved.Prober == nil {
		resolved.Prober = NewProber(resolved.Platform, resolved.Runner, resolved.Logger)
	}
	return &pass{d: &resolved, memo: make(map[string]ProbeResult)}
}

// Discover enumerates and confirms in one pass. The only error it returns is
// the context's.
func (d *Discoverer) Discover(ctx context.Context, reporter ProbeReporter) ([]Installation, error) {
	s := d.newPass()
	candidates := s.candidates(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.confirm(ctx, candidates, reporter)
}

// candidates returns the deduplicated, unprobed candidate list.
func (s *pass) candidates(ctx context.Context) []Candidate {
	var all []Candidate
	all = append(all, s.systemLookup(ctx)...)
	all = append(all, s.versionManagerScan()...)
	all = append(all, s.standardPaths(ctx)...)
	all = append(all, s.platformExtras()...)
	all = append(all, s.configured()...)

	deduped := Dedup(all)
	s.d.Logger.Debug("enumerated candidates", "total", len(all), "unique", len(deduped))
	return deduped
}

// Dedup drops candidates whose path was already seen. The first occurrence
// keeps its source and type.
func Dedup(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Path]; ok {
			continue
		}
		seen[c.Path] = struct{}{}
		out = append(out, c)
	}
	return out
}

// confirm probes candidates and returns the functional ones in input order.
func (s *pass) confirm(ctx context.Context, candidates []Candidate, reporter ProbeReporter) ([]Installation, error) {
	results := make([]ProbeResult, len(candidates))

	workers := s.d.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if reporter != nil {
				reporter.ProbeStarted(i, c)
			}
			results[i] = s.probe(gctx, c.Path)
			if reporter != nil {
				reporter.ProbeFinished(i, c, results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	installs := make([]Installation, 0, len(candidates))
	for i, c := range candidates {
		r := results[i]
		if !r.Functional {
			s.d.Logger.Debug("discarding non-functional candidate", "path", c.Path, "source", c.Source)
			continue
		}
		installs = append(installs, Installation{
			Path:    c.Path,
			Version: r.Version,
			Source:  c.Source,
			Type:    c.Type,
		})
	}
	return installs, nil
}

// probe runs the prober at most once per path within a pass.
func (s *pass) probe(ctx context.Context, path string) ProbeResult {
	s.mu.Lock()
	if r, ok := s.memo[path]; ok {
		s.mu.Unlock()
		return r
	}
	s.mu.Unlock()

	r := s.d.Prober.Probe(ctx, path)
	if ctx.Err() != nil {
		return r
	}

	s.mu.Lock()
	s.memo[path] = r
	s.mu.Unlock()
	return r
}
