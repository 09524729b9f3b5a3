// Package lump provides encode/decode of individual BSP lumps in binary,
// standalone-file and directory-entry forms.
package lump

import (
	"os"

	"github.com/pkg/errors"
)

// Kind selects the codec used for a lump.
type Kind int

const (
	// Unknown is an unrecognized codec kind.
	Unknown Kind = iota

	// Blob is an opaque byte payload.
	Blob

	// Entities is the NUL-terminated entity text.
	Entities

	// Textures is the fixed-width texture (shader) table.
	Textures

	// Lightmaps is the raw lightmap image set.
	Lightmaps
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Blob:
		return "blob"
	case Entities:
		return "entities"
	case Textures:
		return "textures"
	case Lightmaps:
		return "lightmaps"
	default:
		return "unknown"
	}
}

// Ext returns the directory-form extension for the kind, including the dot.
func (k Kind) Ext() string {
	switch k {
	case Blob:
		return ".bin"
	case Entities:
		return ".txt"
	case Textures:
		return ".csv"
	case Lightmaps:
		return ".d"
	default:
		return ""
	}
}

// KindByExt returns the codec kind owning a directory-form extension.
func KindByExt(ext string) Kind {
	for _, k := range []Kind{Blob, Entities, Textures, Lightmaps} {
		if k.Ext() == ext {
			return k
		}
	}

	return Unknown
}

// Codec is the capability set shared by every lump kind.
type Codec interface {
	// Kind returns the codec kind.
	Kind() Kind
	// Decode replaces the codec content with the lump bytes.
	Decode(data []byte) error
	// Encode returns the lump bytes.
	Encode() ([]byte, error)
	// ReadFile decodes the lump bytes stored in a standalone file.
	ReadFile(path string) error
	// WriteFile stores the lump bytes in a standalone file.
	WriteFile(path string) error
	// ReadDirEntry decodes the directory-form entry with the given base name.
	ReadDirEntry(dir string, name string) error
	// WriteDirEntry writes the directory-form entry for the lump and returns its base name.
	WriteDirEntry(dir string, lumpName string) (string, error)
	// Empty reports whether the lump has no content.
	Empty() bool
}

// New returns an empty codec of the given kind. The geometry is used by
// the lightmap codec only.
func New(kind Kind, geom Geometry) (Codec, error) {
	switch kind {
	case Blob:
		return &BlobLump{}, nil
	case Entities:
		return &EntityLump{}, nil
	case Textures:
		return &TextureLump{}, nil
	case Lightmaps:
		if geom.ImageSize() <= 0 {
			return nil, errors.Wrapf(ErrSize, "invalid lightmap geometry %s", geom)
		}
		return &LightmapLump{Geometry: geom}, nil
	default:
		return nil, errors.Wrapf(ErrFormat, "unknown codec kind %d", int(kind))
	}
}

// Decode returns a codec of the given kind holding data.
func Decode(kind Kind, geom Geometry, data []byte) (Codec, error) {
	c, err := New(kind, geom)
	if err != nil {
		return nil, err
	}

	if err := c.Decode(data); err != nil {
		return nil, err
	}

	return c, nil
}

// readRaw decodes a standalone lump file through the codec binary form.
func readRaw(c Codec, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return c.Decode(data)
}

// writeRaw stores the codec binary form in a standalone file.
func writeRaw(c Codec, path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}

	return writeFileIfChanged(path, data)
}
