package bsp

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/woozymasta/pathrules"

	"github.com/woozymasta/bsp-tool/internal/lump"
	"github.com/woozymasta/bsp-tool/internal/lumpname"
)

// WriteDir exports the container as a directory-form tree: the format
// descriptor plus one entry per non-empty lump. Entries of the same lump
// that the export does not write are removed.
func (b *Bsp) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := writeSidecar(dir, b.layout.Format); err != nil {
		return err
	}

	for _, l := range b.lumps {
		existing, err := lumpCandidates(dir, l.Name)
		if err != nil {
			return err
		}

		written := ""
		if len(l.Data) > 0 {
			c, err := b.Codec(l.Name)
			if err != nil {
				return err
			}

			written = lumpname.Base(l.Name, l.Kind)
			if err := removeEntries(dir, existing, written); err != nil {
				return err
			}

			if _, err := c.WriteDirEntry(dir, l.Name); err != nil {
				return errors.WithMessagef(err, "lump %q", l.Name)
			}
			continue
		}

		if err := removeEntries(dir, existing, written); err != nil {
			return err
		}
	}

	return nil
}

// ReadDir imports a directory-form tree. Without a descriptor the tree is
// read as DefaultFormat. A lump without a matching entry is synthesized
// empty and reported by Synthesized.
func ReadDir(dir string) (*Bsp, error) {
	f, ok, err := readSidecar(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		f = DefaultFormat
	}

	b, err := New(f)
	if err != nil {
		return nil, errors.WithMessage(err, SidecarName)
	}

	for _, l := range b.lumps {
		candidates, err := lumpCandidates(dir, l.Name)
		if err != nil {
			return nil, err
		}

		switch len(candidates) {
		case 0:
			continue
		case 1:
		default:
			return nil, errors.Wrapf(ErrFormat, "lump %q: ambiguous entries %q", l.Name, candidates)
		}

		name := candidates[0]
		parsed, ok := lumpname.ParseBase(name)
		if !ok || parsed.Lump != l.Name || parsed.Kind != l.Kind {
			return nil, errors.Wrapf(ErrFormat, "lump %q: unrecognized extension of %q, want %q", l.Name, name, l.Kind.Ext())
		}

		c, err := lump.New(l.Kind, b.layout.Lightmap)
		if err != nil {
			return nil, err
		}
		if err := c.ReadDirEntry(dir, name); err != nil {
			return nil, errors.WithMessagef(err, "lump %q", l.Name)
		}
		if err := b.SetCodec(l.Name, c); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// lumpCandidates lists entries of dir matching <lumpName>.*.
func lumpCandidates(dir string, lumpName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	matcher, err := pathrules.NewMatcher([]pathrules.Rule{
		{Action: pathrules.ActionInclude, Pattern: lumpName + ".*"},
	}, pathrules.MatcherOptions{
		DefaultAction: pathrules.ActionExclude,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "lump %q: %v", lumpName, err)
	}

	var out []string
	for _, e := range entries {
		if matcher.Included(e.Name(), e.IsDir()) {
			out = append(out, e.Name())
		}
	}

	return out, nil
}

// removeEntries removes every entry in names except keep.
func removeEntries(dir string, names []string, keep string) error {
	for _, name := range names {
		if name == keep {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}
