package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// systemLookup asks the OS resolver (which/where) for the tool.
func (s *pass) systemLookup(ctx context.Context) []Candidate {
	p := s.d.Platform
	opts := RunOptions{
		Env:        s.d.Prober.Env.Environ(p.LookupCommand),
		HideWindow: p.HideWindow,
	}
	result, err := s.d.Runner.Run(ctx, p.LookupCommand, []string{p.Tool}, opts)
	if err != nil {
		s.d.Logger.Debug("system lookup failed", "command", p.LookupCommand, "err", err)
		return nil
	}

	line := strings.TrimSpace(firstLine(strings.TrimSpace(decodeOutput(result.Stdout))))
	if line == "" {
		return nil
	}
	path := parseLookupOutput(line, p.Tool)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		s.d.Logger.Warn("path from system lookup does not exist", "command", p.LookupCommand, "path", path)
		return nil
	}
	s.d.Logger.Debug("system lookup found tool", "command", p.LookupCommand, "path", path)
	return []Candidate{{Path: path, Source: p.LookupCommand, Type: System}}
}

// parseLookupOutput understands the shell alias form
// "claude: aliased to /path/to/claude" and otherwise returns line as is.
func parseLookupOutput(line, tool string) string {
	if strings.HasPrefix(line, tool+":") {
		if _, after, ok := strings.Cut(line, "aliased to"); ok {
			return strings.TrimSpace(after)
		}
	}
	return line
}

// versionManagerScan checks every runtime under the version manager tree and
// keeps the first executable name that exists per runtime.
func (s *pass) versionManagerScan() []Candidate {
	p := s.d.Platform
	if p.VersionManagerRoot == "" {
		return nil
	}
	entries, err := os.ReadDir(p.VersionManagerRoot)
	if err != nil {
		return nil
	}

	var out []Candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for _, name := range p.Executables {
			path := p.Join(p.VersionManagerRoot, entry.Name(), "bin", name)
			if !isRegularFile(path) {
				continue
			}
			s.d.Logger.Debug("found tool in version manager", "runtime", entry.Name(), "path", path)
			out = append(out, Candidate{
				Path:   path,
				Source: fmt.Sprintf("nvm (%s)", entry.Name()),
				Type:   System,
			})
			break
		}
	}
	return out
}

// standardPaths checks the conventional locations table and then tries the
// bare executable names through the spawner.
func (s *pass) standardPaths(ctx context.Context) []Candidate {
	p := s.d.Platform
	out := existing(p.StandardPaths)
	for _, c := range out {
		s.d.Logger.Debug("found tool at standard path", "path", c.Path, "source", c.Source)
	}

	for _, name := range p.Executables {
		result := s.probe(ctx, name)
		if !result.Functional {
			continue
		}
		s.d.Logger.Debug("tool is available in PATH", "name", name)
		out = append(out, Candidate{Path: name, Source: SourcePATH, Type: System})
		break
	}
	return out
}

// platformExtras covers package-manager conventions specific to the family.
func (s *pass) platformExtras() []Candidate {
	p := s.d.Platform
	var out []Candidate
	out = append(out, s.cellarScan()...)
	out = append(out, s.desktopEntries()...)
	out = append(out, existing(p.PackagePaths)...)
	out = append(out, s.appImageScan()...)
	out = append(out, existing(p.ExtraPaths)...)
	return out
}

func (s *pass) cellarScan() []Candidate {
	p := s.d.Platform
	var out []Candidate
	for _, root := range p.CellarRoots {
		formula := filepath.Join(root.Dir, p.Tool)
		entries, err := os.ReadDir(formula)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(formula, entry.Name(), "bin", p.Tool)
			if !isRegularFile(path) {
				continue
			}
			s.d.Logger.Debug("found tool in cellar", "path", path)
			out = append(out, Candidate{
				Path:   path,
				Source: fmt.Sprintf("%s (%s)", root.Tag, entry.Name()),
				Type:   System,
			})
		}
	}
	return out
}

func (s *pass) appImageScan() []Candidate {
	p := s.d.Platform
	var out []Candidate
	for _, dir := range p.AppImageDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !isAppImage(entry.Name(), p.Tool) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			s.d.Logger.Debug("found AppImage", "path", path)
			out = append(out, Candidate{Path: path, Source: "appimage-user", Type: System})
		}
	}
	return out
}

func isAppImage(name, tool string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, strings.ToLower(tool)) && strings.HasSuffix(lower, ".appimage")
}

// configured returns the user-supplied extra paths that exist.
func (s *pass) configured() []Candidate {
	var out []Candidate
	for _, c := range s.d.ExtraPaths {
		if c.Path == "" || !isRegularFile(c.Path) {
			continue
		}
		if c.Source == "" {
			c.Source = SourceConfig
		}
		c.Type = Custom
		out = append(out, c)
	}
	return out
}

func existing(table []Candidate) []Candidate {
	var out []Candidate
	for _, c := range table {
		if isRegularFile(c.Path) {
			out = append(out, c)
		}
	}
	return out
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
