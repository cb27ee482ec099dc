package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadOverlaysGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".blocklang.yaml")
	body := "clang_path: /usr/bin/clang-17\nworker_cap: 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClangPath != "/usr/bin/clang-17" {
		t.Errorf("ClangPath = %q", cfg.ClangPath)
	}
	if cfg.WorkerCap != 2 {
		t.Errorf("WorkerCap = %d, want 2", cfg.WorkerCap)
	}
	if cfg.BuildDir != "build" {
		t.Errorf("BuildDir = %q, want the default to survive an unset key", cfg.BuildDir)
	}
}

func TestDefaultWorkerCapMatchesNumCPU(t *testing.T) {
	if Default().WorkerCap != runtime.NumCPU() {
		t.Errorf("WorkerCap default should track runtime.NumCPU()")
	}
}
