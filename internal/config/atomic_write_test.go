package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWrite_CreatesFileAndParents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	if err := AtomicWrite(path, []byte("target:\n  name: nginx\n")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "target:\n  name: nginx\n" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}

func TestAtomicWrite_PreservesPermissions(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("old"), 0o640); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWrite(path, []byte("new")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o640 {
		t.Errorf("perm = %o, want 640", perm)
	}
}

func TestAtomicWrite_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	for i := 0; i < 3; i++ {
		if err := AtomicWrite(path, []byte("x")); err != nil {
			t.Fatalf("AtomicWrite() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only config.yaml, got %s", strings.Join(names, ", "))
	}
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ProjectConfigFile)

	if err := WriteDefaultFile(path, false); err != nil {
		t.Fatalf("WriteDefaultFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != DefaultConfigYAML {
		t.Error("file does not hold the default config")
	}

	err = WriteDefaultFile(path, false)
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("second write error = %v, want ErrConfigExists", err)
	}

	if err := os.WriteFile(path, []byte("edited"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefaultFile(path, true); err != nil {
		t.Fatalf("forced write error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != DefaultConfigYAML {
		t.Error("forced write did not restore the default config")
	}
}
