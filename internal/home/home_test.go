package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-pagenum")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-pagenum" {
			t.Errorf("expected path /tmp/test-pagenum, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-pagenum")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"ConfigPath", dir.ConfigPath(), "/tmp/test-pagenum/config.yaml"},
		{"ScratchDir", dir.ScratchDir(), "/tmp/test-pagenum/scratch"},
		{"ExportsDir", dir.ExportsDir(), "/tmp/test-pagenum/exports"},
		{"ExportPath", dir.ExportPath("../book_with_pagenums.pdf"), "/tmp/test-pagenum/exports/book_with_pagenums.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, tt.got)
			}
		})
	}
}

func TestDir_EnsureExists(t *testing.T) {
	dir, err := New(filepath.Join(t.TempDir(), "pagenum-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir.Exists() {
		t.Error("directory should not exist yet")
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	if !dir.Exists() {
		t.Error("directory should exist after EnsureExists")
	}
	for _, p := range []string{dir.ScratchDir(), dir.ExportsDir()} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	// Calling again should be idempotent
	if err := dir.EnsureExists(); err != nil {
		t.Errorf("second EnsureExists failed: %v", err)
	}
}

func TestDir_CleanScratch(t *testing.T) {
	dir, _ := New(t.TempDir())

	// missing scratch dir is fine
	if err := dir.CleanScratch(); err != nil {
		t.Fatalf("CleanScratch on missing dir: %v", err)
	}

	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}
	leftover := filepath.Join(dir.ScratchDir(), "preview-1.pdf")
	if err := os.WriteFile(leftover, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write leftover: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir.ScratchDir(), "page-1"), 0o755); err != nil {
		t.Fatalf("failed to create leftover dir: %v", err)
	}

	if err := dir.CleanScratch(); err != nil {
		t.Fatalf("CleanScratch failed: %v", err)
	}
	entries, _ := os.ReadDir(dir.ScratchDir())
	if len(entries) != 0 {
		t.Errorf("expected empty scratch dir, got %d entries", len(entries))
	}
}

func TestDir_ConfigExists(t *testing.T) {
	dir, _ := New(t.TempDir())

	if dir.ConfigExists() {
		t.Error("config should not exist yet")
	}
	if err := os.WriteFile(dir.ConfigPath(), []byte("server:\n  port: \"8080\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if !dir.ConfigExists() {
		t.Error("config should exist")
	}
}
