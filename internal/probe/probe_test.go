package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hdr   string
		kind  Kind
		magic string
	}{
		{name: "ibsp", hdr: "IBSP\x2e\x00\x00\x00", kind: Container, magic: "IBSP"},
		{name: "rbsp", hdr: "RBSP\x01\x00\x00\x00", kind: Container, magic: "RBSP"},
		{name: "fbsp", hdr: "FBSP", kind: Container, magic: "FBSP"},
		{name: "unk", hdr: "XXXX", kind: Unknown, magic: "XXXX"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			localPath := filepath.Join(t.TempDir(), "test.bsp")
			if err := os.WriteFile(localPath, []byte(tt.hdr), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}

			kind, magic, err := Path(localPath)
			if err != nil {
				t.Fatalf("Path error: %v", err)
			}
			if kind != tt.kind {
				t.Fatalf("kind=%q want %q", kind, tt.kind)
			}
			if magic != tt.magic {
				t.Fatalf("magic=%q want %q", magic, tt.magic)
			}
		})
	}
}

func TestPathDirectory(t *testing.T) {
	t.Parallel()

	kind, _, err := Path(t.TempDir())
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if kind != Directory {
		t.Fatalf("kind=%q want %q", kind, Directory)
	}
}

func TestPathShortFile(t *testing.T) {
	t.Parallel()

	localPath := filepath.Join(t.TempDir(), "short.bsp")
	if err := os.WriteFile(localPath, []byte("IB"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := Path(localPath); err == nil {
		t.Fatalf("expected error for short file")
	}
}
