package bsp

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/woozymasta/bsp-tool/internal/probe"
)

// ContainerExt is the file extension that selects the packed form on Save.
const ContainerExt = ".bsp"

// Load reads path as a directory-form tree when it is a directory and as a
// packed container otherwise.
func Load(path string) (*Bsp, error) {
	kind, magic, err := probe.Path(path)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errors.Wrapf(ErrFormat, "%s: file too short for magic", path)
	}
	if err != nil {
		return nil, err
	}

	switch kind {
	case probe.Directory:
		return ReadDir(path)
	case probe.Container:
		return ReadFile(path)
	default:
		return nil, errors.Wrapf(ErrFormat, "%s: unrecognized magic %q", path, magic)
	}
}

// Save writes a packed container when path has the .bsp extension and a
// directory-form tree otherwise.
func Save(b *Bsp, path string) error {
	if IsContainerPath(path) {
		return b.WriteFile(path)
	}

	return b.WriteDir(path)
}

// IsContainerPath reports whether Save would write a packed container to path.
func IsContainerPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ContainerExt)
}
