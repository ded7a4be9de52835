package paths

import (
	"os"
	"path/filepath"
	"testing"

	"claudefinder/internal/config"
)

func TestResolveDataDirOverride(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv(DataDirEnv, dataDir)

	ap, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ap.DataDir != dataDir {
		t.Fatalf("expected DataDir %s, got %s", dataDir, ap.DataDir)
	}
	if want := filepath.Join(dataDir, "agents.db"); ap.DatabaseFile != want {
		t.Fatalf("expected DatabaseFile %s, got %s", want, ap.DatabaseFile)
	}
	if filepath.Base(ap.ConfigFile) != "config.yaml" {
		t.Fatalf("unexpected ConfigFile %s", ap.ConfigFile)
	}
}

func TestResolveConfigFlag(t *testing.T) {
	t.Setenv(DataDirEnv, t.TempDir())
	flag := filepath.Join(t.TempDir(), "alt.yaml")

	ap, err := Resolve(flag)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ap.ConfigFile != flag {
		t.Fatalf("expected ConfigFile %s, got %s", flag, ap.ConfigFile)
	}
}

func TestApplyConfigRelative(t *testing.T) {
	root := t.TempDir()
	ap := newAppPaths(root, root)

	cfg := config.Config{}
	cfg.Cache.Database = "state/settings.db"
	cfg.Log.Dir = "diag"

	applied := ApplyConfig(ap, cfg)

	if want := filepath.Join(root, "state", "settings.db"); applied.DatabaseFile != want {
		t.Fatalf("expected database path %s, got %s", want, applied.DatabaseFile)
	}
	if want := filepath.Join(root, "diag"); applied.LogsDir != want {
		t.Fatalf("expected logs dir %s, got %s", want, applied.LogsDir)
	}
}

func TestApplyConfigAbsolute(t *testing.T) {
	root := t.TempDir()
	ap := newAppPaths(root, root)
	dbAbs := filepath.Join(t.TempDir(), "agents.db")

	cfg := config.Config{}
	cfg.Cache.Database = dbAbs

	applied := ApplyConfig(ap, cfg)
	if applied.DatabaseFile != dbAbs {
		t.Fatalf("expected database path %s, got %s", dbAbs, applied.DatabaseFile)
	}
	if applied.LogsDir != ap.LogsDir {
		t.Fatalf("logs dir changed unexpectedly: %s", applied.LogsDir)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "claude")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("FileExists(file) = %v, %v", ok, err)
	}
	if ok, _ := FileExists(dir); ok {
		t.Fatal("FileExists(dir) should be false")
	}
	if ok, err := FileExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("FileExists(missing) = %v, %v", ok, err)
	}
	if ok, err := DirExists(dir); err != nil || !ok {
		t.Fatalf("DirExists(dir) = %v, %v", ok, err)
	}
	if ok, _ := DirExists(file); ok {
		t.Fatal("DirExists(file) should be false")
	}
}
