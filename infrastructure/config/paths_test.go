package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFind_Explicit(t *testing.T) {
	path := writeConfig(t, "username: admin\n")
	got, err := Find(path)
	if err != nil || got != path {
		t.Errorf("Find(%q) = %q, %v", path, got, err)
	}

	if _, err := Find(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Find() should fail for a missing explicit file")
	}
}

func TestFindIn_FirstExistingWins(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing", FileName)
	second := filepath.Join(dir, "second.yaml")
	third := filepath.Join(dir, "third.yaml")
	for _, p := range []string{second, third} {
		if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := findIn([]string{missing, dir, second, third})
	if err != nil {
		t.Fatalf("findIn() error = %v", err)
	}
	if got != second {
		t.Errorf("findIn() = %q, want %q", got, second)
	}

	got, err = findIn([]string{missing})
	if err != nil || got != "" {
		t.Errorf("findIn(missing) = %q, %v", got, err)
	}
}

func TestSearchPaths_StartWithWorkingDir(t *testing.T) {
	paths := SearchPaths()
	if len(paths) < 2 || paths[0] != FileName {
		t.Errorf("SearchPaths() = %v", paths)
	}
}

func TestLoadOrDefault(t *testing.T) {
	path := writeConfig(t, "platform: dmos\n")
	cfg, used, err := LoadOrDefault(path)
	if err != nil || used != path || cfg.Platform != "dmos" {
		t.Errorf("LoadOrDefault(%q) = %+v, %q, %v", path, cfg, used, err)
	}
}
