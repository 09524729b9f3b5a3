package bsp

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/woozymasta/bsp-tool/internal/lump"
)

// Format is the (magic, version) identity of a container layout.
type Format struct {
	Magic   string `json:"bsp_magic_number"`
	Version uint32 `json:"bsp_version"`
}

// String returns MAGIC/version.
func (f Format) String() string {
	return fmt.Sprintf("%s/%d", f.Magic, f.Version)
}

// Known format identities.
var (
	// IBSP46 is the id Tech 3 base format.
	IBSP46 = Format{Magic: "IBSP", Version: 46}
	// IBSP47 adds the advertisements lump.
	IBSP47 = Format{Magic: "IBSP", Version: 47}
	// RBSP1 adds the light array lump.
	RBSP1 = Format{Magic: "RBSP", Version: 1}
	// FBSP1 adds the light array lump and uses large lightmaps.
	FBSP1 = Format{Magic: "FBSP", Version: 1}

	// DefaultFormat is assumed for directory-form trees without a sidecar.
	DefaultFormat = IBSP46
)

// Lump names with a dedicated codec or quirk.
const (
	LumpEntities       = "entities"
	LumpTextures       = "textures"
	LumpLightmaps      = "lightmaps"
	LumpAdvertisements = "advertisements"
	LumpLightArray     = "lightarray"
)

// LumpSpec is one entry of a lump directory.
type LumpSpec struct {
	Name string    // lump name, unique within the layout
	Kind lump.Kind // codec kind
}

// Layout is the lump directory of a format: lump order and codecs.
type Layout struct {
	Lumps    []LumpSpec    // canonical on-disk order
	Lightmap lump.Geometry // lightmap image geometry
	Format   Format        // format identity
	// EmptyTrailer appends one permanently empty directory entry after the
	// real lumps.
	EmptyTrailer bool
	// Advertisements enables the advertisements presence heuristic on read.
	Advertisements bool
}

// baseLumps is the id Tech 3 lump directory shared by every format.
var baseLumps = []LumpSpec{
	{Name: LumpEntities, Kind: lump.Entities},
	{Name: LumpTextures, Kind: lump.Textures},
	{Name: "planes", Kind: lump.Blob},
	{Name: "nodes", Kind: lump.Blob},
	{Name: "leafs", Kind: lump.Blob},
	{Name: "leaffaces", Kind: lump.Blob},
	{Name: "leafbrushes", Kind: lump.Blob},
	{Name: "models", Kind: lump.Blob},
	{Name: "brushes", Kind: lump.Blob},
	{Name: "brushsides", Kind: lump.Blob},
	{Name: "vertexes", Kind: lump.Blob},
	{Name: "meshverts", Kind: lump.Blob},
	{Name: "effects", Kind: lump.Blob},
	{Name: "faces", Kind: lump.Blob},
	{Name: LumpLightmaps, Kind: lump.Lightmaps},
	{Name: "lightvols", Kind: lump.Blob},
	{Name: "visdata", Kind: lump.Blob},
}

// withLumps returns baseLumps followed by extra.
func withLumps(extra ...LumpSpec) []LumpSpec {
	out := make([]LumpSpec, 0, len(baseLumps)+len(extra))
	out = append(out, baseLumps...)
	return append(out, extra...)
}

// layouts is the lump directory index. A new format is one new entry.
var layouts = map[Format]Layout{
	IBSP46: {
		Format:       IBSP46,
		Lumps:        withLumps(),
		Lightmap:     lump.SmallLightmap,
		EmptyTrailer: true,
	},
	IBSP47: {
		Format:         IBSP47,
		Lumps:          withLumps(LumpSpec{Name: LumpAdvertisements, Kind: lump.Blob}),
		Lightmap:       lump.SmallLightmap,
		Advertisements: true,
	},
	RBSP1: {
		Format:   RBSP1,
		Lumps:    withLumps(LumpSpec{Name: LumpLightArray, Kind: lump.Blob}),
		Lightmap: lump.SmallLightmap,
	},
	FBSP1: {
		Format:   FBSP1,
		Lumps:    withLumps(LumpSpec{Name: LumpLightArray, Kind: lump.Blob}),
		Lightmap: lump.LargeLightmap,
	},
}

// LookupLayout returns the lump directory of a format.
func LookupLayout(f Format) (Layout, error) {
	l, ok := layouts[f]
	if !ok {
		if !knownMagic(f.Magic) {
			return Layout{}, errors.Wrapf(ErrFormat, "unrecognized magic %q", f.Magic)
		}
		return Layout{}, errors.Wrapf(ErrFormat, "unsupported version %d for magic %q", f.Version, f.Magic)
	}

	return l, nil
}

// Formats returns every known format identity in a stable order.
func Formats() []Format {
	out := make([]Format, 0, len(layouts))
	for f := range layouts {
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Magic != out[j].Magic {
			return out[i].Magic < out[j].Magic
		}
		return out[i].Version < out[j].Version
	})

	return out
}

// knownMagic reports whether magic belongs to any known format.
func knownMagic(magic string) bool {
	for f := range layouts {
		if f.Magic == magic {
			return true
		}
	}

	return false
}

// tableEntries returns the number of directory entries written for the layout.
func (l Layout) tableEntries() int {
	if l.EmptyTrailer {
		return len(l.Lumps) + 1
	}

	return len(l.Lumps)
}
