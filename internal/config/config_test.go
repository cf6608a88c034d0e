package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Point the search at an empty directory so no real config is found.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Root != "." {
		t.Errorf("Root = %q, want %q", cfg.Root, ".")
	}
	if cfg.MaxRuns != DefaultMaxRuns {
		t.Errorf("MaxRuns = %d, want %d", cfg.MaxRuns, DefaultMaxRuns)
	}
	if cfg.NoColor {
		t.Error("NoColor should default to false")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "root: /workspace\nmax_runs: 5\nno_color: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Root != "/workspace" {
		t.Errorf("Root = %q, want /workspace", cfg.Root)
	}
	if cfg.MaxRuns != 5 {
		t.Errorf("MaxRuns = %d, want 5", cfg.MaxRuns)
	}
	if !cfg.NoColor {
		t.Error("NoColor not read from file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHANGESET_ROOT", "/from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Root != "/from-env" {
		t.Errorf("Root = %q, want /from-env", cfg.Root)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Root: ".", MaxRuns: 10}},
		{name: "empty root", cfg: Config{Root: "", MaxRuns: 10}, wantErr: true},
		{name: "negative max_runs", cfg: Config{Root: ".", MaxRuns: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveRunsDir(t *testing.T) {
	t.Run("explicit setting wins", func(t *testing.T) {
		cfg := Config{Root: ".", RunsDir: "/data/runs"}
		dir, err := cfg.ResolveRunsDir()
		if err != nil {
			t.Fatalf("ResolveRunsDir failed: %v", err)
		}
		if dir != "/data/runs" {
			t.Errorf("dir = %q", dir)
		}
	})

	t.Run("defaults under home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		cfg := Config{Root: "."}
		dir, err := cfg.ResolveRunsDir()
		if err != nil {
			t.Fatalf("ResolveRunsDir failed: %v", err)
		}
		want := filepath.Join(home, ".changeset", "runs")
		if dir != want {
			t.Errorf("dir = %q, want %q", dir, want)
		}
	})
}

func TestEnsureRunsDir(t *testing.T) {
	base := t.TempDir()
	cfg := Config{Root: ".", RunsDir: filepath.Join(base, "nested", "runs")}

	dir, err := cfg.EnsureRunsDir()
	if err != nil {
		t.Fatalf("EnsureRunsDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("runs dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("runs dir is not a directory")
	}
}
