package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCreatesUniqueFiles(t *testing.T) {
	dir := t.TempDir()

	a, err := New(dir, "download", ".webm")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	b, err := New(dir, "download", ".webm")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if a.Path == b.Path {
		t.Errorf("expected unique paths, both = %q", a.Path)
	}
	for _, art := range []*Artifact{a, b} {
		if _, err := os.Stat(art.Path); err != nil {
			t.Errorf("artifact file missing: %v", err)
		}
		base := filepath.Base(art.Path)
		if !strings.HasPrefix(base, "download-") || !strings.HasSuffix(base, ".webm") {
			t.Errorf("unexpected artifact name %q", base)
		}
	}
}

func TestNewCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "scratch")

	a, err := New(dir, "out", ".mp3")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if filepath.Dir(a.Path) != dir {
		t.Errorf("artifact dir = %q, want %q", filepath.Dir(a.Path), dir)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	a, err := New(t.TempDir(), "out", ".wav")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := a.Remove(); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := os.Stat(a.Path); !os.IsNotExist(err) {
		t.Errorf("artifact still exists after Remove")
	}
	if err := a.Remove(); err != nil {
		t.Errorf("second Remove() error: %v", err)
	}
}

func TestSize(t *testing.T) {
	a, err := New(t.TempDir(), "download", ".webm")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	n, err := a.Size()
	if err != nil || n != 0 {
		t.Errorf("Size() = %d, %v; want 0, nil", n, err)
	}

	if err := os.WriteFile(a.Path, []byte("payload"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err = a.Size()
	if err != nil || n != 7 {
		t.Errorf("Size() = %d, %v; want 7, nil", n, err)
	}
}
