package binary

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// desktopEntries reads the Exec= line of each configured desktop file.
// Glob patterns that fail to expand contribute nothing.
func (s *pass) desktopEntries() []Candidate {
	var out []Candidate
	for _, entry := range s.d.Platform.DesktopEntries {
		var files []string
		if strings.ContainsAny(entry.Pattern, "*?[") {
			matches, err := filepath.Glob(entry.Pattern)
			if err != nil {
				continue
			}
			files = matches
		} else {
			files = []string{entry.Pattern}
		}

		for _, file := range files {
			c, ok := candidateFromDesktopFile(file, entry.Source)
			if !ok {
				continue
			}
			s.d.Logger.Debug("found tool from desktop entry", "entry", file, "path", c.Path)
			out = append(out, c)
		}
	}
	return out
}

func candidateFromDesktopFile(file, source string) (Candidate, bool) {
	f, err := os.Open(file)
	if err != nil {
		return Candidate{}, false
	}
	defer f.Close()

	path, ok := parseDesktopExec(f)
	if !ok || !exists(path) {
		return Candidate{}, false
	}
	return Candidate{Path: path, Source: desktopSource(file, source), Type: System}, true
}

// parseDesktopExec returns the first whitespace-delimited token of the first
// Exec= line. Later Exec= lines are never consulted.
func parseDesktopExec(r io.Reader) (string, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Exec=") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "Exec="))
		if len(fields) == 0 {
			return "", false
		}
		return fields[0], true
	}
	return "", false
}

func desktopSource(file, fallback string) string {
	switch {
	case strings.Contains(file, "snap"):
		return "snap-desktop"
	case strings.Contains(file, "flatpak"):
		return "flatpak-desktop"
	default:
		return fallback
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
