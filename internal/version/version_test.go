package version

import (
	"os"
	"path/filepath"
	"testing"
)

func restore(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() {
		Version, Commit = v, c
	})
}

func TestLoad_FromFile(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "VERSION")
	if err := os.WriteFile(path, []byte("1.4.2\n"), 0o644); err != nil {
		t.Fatalf("Failed to write VERSION: %v", err)
	}

	if got := Load(path); got != "1.4.2" {
		t.Errorf("Expected 1.4.2, got %q", got)
	}
	if Version != "1.4.2" {
		t.Errorf("Expected Version to be updated, got %q", Version)
	}
}

func TestLoad_MissingOrEmptyFileKeepsBuildVersion(t *testing.T) {
	restore(t)
	Version = "2.0.0"

	if got := Load(filepath.Join(t.TempDir(), "absent")); got != "2.0.0" {
		t.Errorf("Expected build version for missing file, got %q", got)
	}

	empty := filepath.Join(t.TempDir(), "VERSION")
	if err := os.WriteFile(empty, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("Failed to write VERSION: %v", err)
	}
	if got := Load(empty); got != "2.0.0" {
		t.Errorf("Expected build version for empty file, got %q", got)
	}
}

func TestString(t *testing.T) {
	restore(t)

	tests := []struct {
		version  string
		commit   string
		expected string
	}{
		{"dev", "", "dev"},
		{"1.0.0", "abc", "1.0.0 (abc)"},
		{"1.0.0", "a1b2c3d4e5f6", "1.0.0 (a1b2c3d)"},
	}

	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}
