package binary

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Family groups operating systems that share discovery conventions.
type Family int

const (
	FamilyUnix Family = iota
	FamilyWindows
)

func (f Family) String() string {
	if f == FamilyWindows {
		return "windows"
	}
	return "unix"
}

// DefaultTool is the canonical command name of the located executable.
const DefaultTool = "claude"

// CellarRoot is a package-manager directory holding one subdirectory per
// installed version.
type CellarRoot struct {
	Dir string
	Tag string
}

// DesktopEntry names a desktop-entry file (or glob) whose Exec= line points
// at the real binary.
type DesktopEntry struct {
	Pattern string
	Source  string
}

// Platform is the set of traits that parameterise discovery for one OS
// family: environment access, naming conventions and the conventional
// location tables. It is built once and then treated as read-only.
type Platform struct {
	Family     Family
	Tool       string
	VersionArg string

	HomeEnv       string
	Home          string
	ListSeparator string

	// Executables are the bare names tried under version-manager bin dirs
	// and through a direct PATH invocation.
	Executables   []string
	LookupCommand string
	HideWindow    bool

	VersionManagerRoot   string
	VersionManagerMarker string

	StandardPaths  []Candidate
	CellarRoots    []CellarRoot
	DesktopEntries []DesktopEntry
	PackagePaths   []Candidate
	AppImageDirs   []string
	ExtraPaths     []Candidate

	EnvAllowList     []string
	EnvAllowPrefixes []string
	RebuildPath      bool
	ToolchainDirs    []string

	Getenv  func(string) string
	Environ func() []string
}

// CurrentPlatform returns the traits for the running OS using the process
// environment.
func CurrentPlatform(tool string) Platform {
	family := FamilyUnix
	if runtime.GOOS == "windows" {
		family = FamilyWindows
	}
	return NewPlatform(family, tool, os.Getenv, os.Environ)
}

// NewPlatform builds the traits for family with explicit environment
// accessors so callers can substitute a fake environment.
func NewPlatform(family Family, tool string, getenv func(string) string, environ func() []string) Platform {
	if tool == "" {
		tool = DefaultTool
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	if environ == nil {
		environ = func() []string { return nil }
	}

	p := Platform{
		Family:     family,
		Tool:       tool,
		VersionArg: "--version",
		Getenv:     getenv,
		Environ:    environ,
	}
	if family == FamilyWindows {
		p.configureWindows()
	} else {
		p.configureUnix()
	}
	return p
}

// Join builds a path with the family's separator.
func (p Platform) Join(elem ...string) string {
	if p.Family == FamilyWindows {
		return strings.Join(elem, `\`)
	}
	return filepath.Join(elem...)
}

// Dir returns the parent directory of path using the family's separators.
func (p Platform) Dir(path string) string {
	seps := "/"
	if p.Family == FamilyWindows {
		seps = `\/`
	}
	idx := strings.LastIndexAny(path, seps)
	if idx < 0 {
		return ""
	}
	if idx == 0 {
		return path[:1]
	}
	return path[:idx]
}

// ExpectedLocations lists human-readable places the tool is looked for.
func (p Platform) ExpectedLocations() []string {
	if p.Family == FamilyWindows {
		return []string{
			"PATH",
			`%APPDATA%\npm`,
			`%ProgramFiles%\nodejs`,
			`%USERPROFILE%\.nvm\versions\node\*\bin`,
			`%USERPROFILE%\.claude\local`,
		}
	}
	return []string{
		"PATH",
		"/usr/local/bin",
		"/opt/homebrew/bin",
		"~/.nvm/versions/node/*/bin",
		"~/.claude/local",
		"~/.local/bin",
	}
}

func (p *Platform) configureWindows() {
	p.HomeEnv = "USERPROFILE"
	p.Home = p.Getenv(p.HomeEnv)
	p.ListSeparator = ";"
	p.Executables = []string{p.Tool, p.Tool + ".cmd"}
	p.LookupCommand = "where"
	p.HideWindow = true
	p.VersionManagerMarker = `\.nvm\versions\node\`
	p.EnvAllowList = []string{
		"PATH", "HOME", "USER", "SHELL", "LANG",
		"NODE_PATH", "NVM_DIR", "NVM_BIN", "HOMEBREW_PREFIX", "HOMEBREW_CELLAR",
		"USERPROFILE", "USERNAME", "COMPUTERNAME", "APPDATA", "LOCALAPPDATA", "TEMP", "TMP",
		"SYSTEMROOT", "PATHEXT", "COMSPEC",
	}
	p.EnvAllowPrefixes = []string{"LC_"}

	tool := p.Tool
	if p.Home != "" {
		p.VersionManagerRoot = p.Join(p.Home, ".nvm", "versions", "node")
		// The home-relative entries keep forward slashes, which Windows
		// accepts, so the paths compare equal to what users typically type.
		h := p.Home
		p.StandardPaths = []Candidate{
			{Path: h + "/.claude/local/" + tool, Source: "claude-local"},
			{Path: h + "/.local/bin/" + tool, Source: "local-bin"},
			{Path: h + "/.npm-global/bin/" + tool, Source: "npm-global"},
			{Path: h + "/.yarn/bin/" + tool, Source: "yarn"},
			{Path: h + "/.bun/bin/" + tool, Source: "bun"},
			{Path: h + "/bin/" + tool, Source: "home-bin"},
			{Path: h + "/node_modules/.bin/" + tool, Source: "node-modules"},
			{Path: h + "/.config/yarn/global/node_modules/.bin/" + tool, Source: "yarn-global"},
			{Path: h + "/AppData/Roaming/npm/" + tool + ".cmd", Source: "npm-global-windows"},
			{Path: h + "/AppData/Roaming/npm/" + tool, Source: "npm-global-windows"},
		}
	}

	if dir := p.Getenv("ProgramFiles"); dir != "" {
		p.ExtraPaths = append(p.ExtraPaths,
			Candidate{Path: p.Join(dir, "nodejs", tool+".cmd"), Source: "nodejs"},
			Candidate{Path: p.Join(dir, "nodejs", tool), Source: "nodejs"},
		)
	}
	if dir := p.Getenv("ProgramFiles(x86)"); dir != "" {
		p.ExtraPaths = append(p.ExtraPaths,
			Candidate{Path: p.Join(dir, "nodejs", tool+".cmd"), Source: "nodejs-x86"},
			Candidate{Path: p.Join(dir, "nodejs", tool), Source: "nodejs-x86"},
		)
	}
	if dir := p.Getenv("APPDATA"); dir != "" {
		p.ExtraPaths = append(p.ExtraPaths,
			Candidate{Path: p.Join(dir, "npm", tool+".cmd"), Source: "npm-appdata"},
			Candidate{Path: p.Join(dir, "npm", tool), Source: "npm-appdata"},
		)
	}
}

func (p *Platform) configureUnix() {
	p.HomeEnv = "HOME"
	p.Home = p.Getenv(p.HomeEnv)
	p.ListSeparator = ":"
	p.Executables = []string{p.Tool}
	p.LookupCommand = "which"
	p.VersionManagerMarker = "/.nvm/versions/node/"
	p.RebuildPath = true
	p.EnvAllowList = []string{
		"HOME", "USER", "SHELL", "LANG", "LC_ALL",
		"NODE_PATH", "NVM_DIR", "NVM_BIN", "HOMEBREW_PREFIX", "HOMEBREW_CELLAR",
		"HTTP_PROXY", "HTTPS_PROXY", "NO_PROXY", "ALL_PROXY",
	}
	p.EnvAllowPrefixes = []string{"LC_"}

	tool := p.Tool
	h := p.Home

	p.StandardPaths = []Candidate{
		{Path: "/usr/local/bin/" + tool, Source: "homebrew-intel"},
		{Path: "/opt/homebrew/bin/" + tool, Source: "homebrew-arm"},
		{Path: "/usr/local/bin/" + tool, Source: "usr-local"},
		{Path: "/usr/bin/" + tool, Source: "usr-bin"},
		{Path: "/bin/" + tool, Source: "bin"},
	}
	if h != "" {
		p.VersionManagerRoot = filepath.Join(h, ".nvm", "versions", "node")
		p.StandardPaths = append(p.StandardPaths,
			Candidate{Path: filepath.Join(h, ".claude", "local", tool), Source: "claude-local"},
			Candidate{Path: filepath.Join(h, ".local", "bin", tool), Source: "local-bin"},
			Candidate{Path: filepath.Join(h, "bin", tool), Source: "home-bin"},
			Candidate{Path: filepath.Join(h, ".npm-global", "bin", tool), Source: "npm-global"},
			Candidate{Path: filepath.Join(h, ".yarn", "bin", tool), Source: "yarn"},
			Candidate{Path: filepath.Join(h, ".bun", "bin", tool), Source: "bun"},
			Candidate{Path: filepath.Join(h, ".pnpm", tool), Source: "pnpm"},
			Candidate{Path: filepath.Join(h, "node_modules", ".bin", tool), Source: "node-modules"},
			Candidate{Path: filepath.Join(h, ".config", "yarn", "global", "node_modules", ".bin", tool), Source: "yarn-global"},
		)
	}
	p.StandardPaths = append(p.StandardPaths,
		Candidate{Path: "/opt/local/bin/" + tool, Source: "macports"},
		Candidate{Path: "/snap/bin/" + tool, Source: "snap"},
	)
	if h != "" {
		p.StandardPaths = append(p.StandardPaths,
			Candidate{Path: filepath.Join(h, ".local", "share", "flatpak", "exports", "bin", tool), Source: "flatpak-user"},
		)
	}
	p.StandardPaths = append(p.StandardPaths,
		Candidate{Path: "/var/lib/flatpak/exports/bin/" + tool, Source: "flatpak-system"},
	)
	if h != "" {
		p.StandardPaths = append(p.StandardPaths,
			Candidate{Path: filepath.Join(h, "Applications", tool), Source: "appimage-user"},
		)
	}
	p.StandardPaths = append(p.StandardPaths,
		Candidate{Path: "/opt/" + tool + "/" + tool, Source: "opt"},
	)

	p.CellarRoots = []CellarRoot{
		{Dir: "/usr/local/Cellar", Tag: "homebrew-intel"},
		{Dir: "/opt/homebrew/Cellar", Tag: "homebrew-arm"},
	}

	p.DesktopEntries = []DesktopEntry{
		{Pattern: "/usr/share/applications/" + tool + ".desktop", Source: "system-package"},
		{Pattern: "/usr/local/share/applications/" + tool + ".desktop", Source: "system-package"},
		{Pattern: "/var/lib/snapd/desktop/applications/" + tool + "*.desktop", Source: "package-manager"},
		{Pattern: "/var/lib/flatpak/exports/share/applications/" + tool + "*.desktop", Source: "package-manager"},
	}

	p.PackagePaths = []Candidate{
		{Path: "/snap/bin/" + tool, Source: "snap"},
		{Path: "/var/lib/snapd/snap/bin/" + tool, Source: "snap"},
	}
	if h != "" {
		p.PackagePaths = append(p.PackagePaths,
			Candidate{Path: filepath.Join(h, ".local", "share", "flatpak", "exports", "bin", tool), Source: "flatpak-user"},
		)
		p.AppImageDirs = []string{
			filepath.Join(h, "Applications"),
			filepath.Join(h, ".local", "bin"),
			filepath.Join(h, "bin"),
			filepath.Join(h, "Downloads"),
		}
	}
	p.PackagePaths = append(p.PackagePaths,
		Candidate{Path: "/var/lib/flatpak/exports/bin/" + tool, Source: "flatpak-system"},
		Candidate{Path: "/usr/local/share/flatpak/exports/bin/" + tool, Source: "flatpak-system"},
	)

	p.ExtraPaths = []Candidate{
		{Path: "/Applications/Claude.app/Contents/MacOS/" + tool, Source: "app-bundle"},
		{Path: "/Applications/Claude CLI.app/Contents/MacOS/" + tool, Source: "app-bundle"},
		{Path: "/usr/local/opt/" + tool + "/bin/" + tool, Source: "homebrew-formula"},
		{Path: "/opt/homebrew/opt/" + tool + "/bin/" + tool, Source: "homebrew-formula"},
		{Path: "/opt/local/bin/" + tool, Source: "macports"},
		{Path: "/opt/local/share/" + tool + "/bin/" + tool, Source: "macports-share"},
		{Path: "/Developer/usr/bin/" + tool, Source: "developer-tools"},
		{Path: "/Library/Developer/CommandLineTools/usr/bin/" + tool, Source: "xcode-cli"},
		{Path: "/opt/" + tool + "/bin/" + tool, Source: "opt-claude"},
		{Path: "/opt/" + tool + "/" + tool, Source: "opt-claude-direct"},
		{Path: "/usr/lib/" + tool + "/" + tool, Source: "usr-lib"},
		{Path: "/usr/libexec/" + tool, Source: "usr-libexec"},
		{Path: "/usr/share/" + tool + "/bin/" + tool, Source: "usr-share"},
	}

	p.ToolchainDirs = []string{
		"/opt/homebrew/bin",
		"/opt/homebrew/sbin",
		"/usr/local/bin",
		"/usr/local/sbin",
		"/usr/bin",
		"/bin",
		"/usr/sbin",
		"/sbin",
	}
	if h != "" {
		p.ToolchainDirs = append(p.ToolchainDirs,
			filepath.Join(h, ".local", "bin"),
			filepath.Join(h, ".cargo", "bin"),
			filepath.Join(h, ".bun", "bin"),
		)
	}
}
