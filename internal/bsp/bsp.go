// Package bsp reads, writes and edits BSP level containers in packed binary
// form and exploded directory form.
package bsp

import (
	"github.com/pkg/errors"

	"github.com/woozymasta/bsp-tool/internal/lump"
)

// Bsp is a fully materialized container: one byte buffer per lump of its layout.
type Bsp struct {
	lumps  []*Lump
	layout Layout
}

// Lump is one named lump of a container.
type Lump struct {
	Name string    // lump name from the layout
	Data []byte    // raw lump bytes, empty when absent
	Kind lump.Kind // codec kind
	// Offset and Length are the directory values the lump was read with;
	// they are informational and recomputed on every write.
	Offset uint32
	Length uint32
	// Present is false when the lump was synthesized empty: missing from a
	// directory-form tree or rejected by the advertisements heuristic.
	Present bool
}

// New returns a container of format f with every lump absent and empty.
func New(f Format) (*Bsp, error) {
	layout, err := LookupLayout(f)
	if err != nil {
		return nil, err
	}

	b := &Bsp{layout: layout, lumps: make([]*Lump, 0, len(layout.Lumps))}
	for _, s := range layout.Lumps {
		b.lumps = append(b.lumps, &Lump{Name: s.Name, Kind: s.Kind})
	}

	return b, nil
}

// Format returns the container format identity.
func (b *Bsp) Format() Format {
	return b.layout.Format
}

// Layout returns the container lump directory.
func (b *Bsp) Layout() Layout {
	return b.layout
}

// Lumps returns every lump in canonical order.
func (b *Bsp) Lumps() []*Lump {
	return b.lumps
}

// Lump returns the lump named name.
func (b *Bsp) Lump(name string) (*Lump, bool) {
	for _, l := range b.lumps {
		if l.Name == name {
			return l, true
		}
	}

	return nil, false
}

// SetLump replaces the raw bytes of a lump and marks it present.
func (b *Bsp) SetLump(name string, data []byte) error {
	l, ok := b.Lump(name)
	if !ok {
		return errors.Wrapf(ErrFormat, "%s has no lump %q", b.layout.Format, name)
	}

	l.Data = data
	l.Present = true
	return nil
}

// Codec decodes a lump with the codec of its kind.
func (b *Bsp) Codec(name string) (lump.Codec, error) {
	l, ok := b.Lump(name)
	if !ok {
		return nil, errors.Wrapf(ErrFormat, "%s has no lump %q", b.layout.Format, name)
	}

	c, err := lump.Decode(l.Kind, b.layout.Lightmap, l.Data)
	if err != nil {
		return nil, errors.WithMessagef(err, "lump %q", name)
	}

	return c, nil
}

// SetCodec encodes c into the lump named name.
func (b *Bsp) SetCodec(name string, c lump.Codec) error {
	l, ok := b.Lump(name)
	if !ok {
		return errors.Wrapf(ErrFormat, "%s has no lump %q", b.layout.Format, name)
	}
	if c.Kind() != l.Kind {
		return errors.Wrapf(ErrFormat, "lump %q: codec %s, want %s", name, c.Kind(), l.Kind)
	}

	data, err := c.Encode()
	if err != nil {
		return errors.WithMessagef(err, "lump %q", name)
	}

	return b.SetLump(name, data)
}

// Synthesized returns the names of lumps that were not read from the source.
func (b *Bsp) Synthesized() []string {
	var out []string
	for _, l := range b.lumps {
		if !l.Present {
			out = append(out, l.Name)
		}
	}

	return out
}
