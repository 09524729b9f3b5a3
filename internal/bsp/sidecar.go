package bsp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/invopop/yaml"
	"github.com/pkg/errors"
)

// SidecarName is the format descriptor file of a directory-form tree.
const SidecarName = "bsp.json"

// readSidecar reads the format descriptor of dir. ok is false when the tree
// has no descriptor.
func readSidecar(dir string) (f Format, ok bool, err error) {
	raw, err := os.ReadFile(filepath.Join(dir, SidecarName))
	if errors.Is(err, os.ErrNotExist) {
		return Format{}, false, nil
	}
	if err != nil {
		return Format{}, false, err
	}

	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Format{}, false, errors.Wrapf(ErrFormat, "%s: %v", SidecarName, err)
	}

	return f, true, nil
}

// writeSidecar writes the format descriptor of dir.
func writeSidecar(dir string, f Format) error {
	out, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, SidecarName), append(out, '\n'), 0o644)
}
