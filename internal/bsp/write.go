package bsp

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// metadataBlock is written between the lump directory and the first lump.
// Its length must be a multiple of 4.
var metadataBlock = []byte("Granger loves you\x00\x00\x00")

// Entry is one lump directory entry.
type Entry struct {
	Offset uint32
	Length uint32
}

// Directory computes the lump directory as it will be written: offsets are
// recomputed from scratch in canonical order, non-empty lumps are padded to
// a 4-byte boundary and the padding is not counted in Length. The result has
// one extra empty entry for layouts with EmptyTrailer.
func (b *Bsp) Directory() ([]Entry, error) {
	entries := make([]Entry, 0, b.layout.tableEntries())
	pos := headerSize + b.layout.tableEntries()*entrySize + len(metadataBlock)

	for _, l := range b.lumps {
		if uint64(len(l.Data)) > math.MaxUint32 {
			return nil, errors.Wrapf(ErrSize, "lump %q: %d bytes exceed uint32", l.Name, len(l.Data))
		}

		entries = append(entries, Entry{Offset: uint32(pos), Length: uint32(len(l.Data))})
		pos += len(l.Data)
		if len(l.Data)%4 != 0 {
			pos = align4(pos)
		}

		if uint64(pos) > math.MaxUint32 {
			return nil, errors.Wrapf(ErrSize, "lump %q: container exceeds 4 GiB", l.Name)
		}
	}

	if b.layout.EmptyTrailer {
		entries = append(entries, Entry{Offset: uint32(pos), Length: 0})
	}

	return entries, nil
}

// Bytes serializes the container.
func (b *Bsp) Bytes() ([]byte, error) {
	entries, err := b.Directory()
	if err != nil {
		return nil, err
	}

	total := headerSize + len(entries)*entrySize + len(metadataBlock)
	if n := len(b.lumps); n > 0 {
		last := entries[n-1]
		total = align4(int(last.Offset) + int(last.Length))
	}

	out := make([]byte, total)
	copy(out, b.layout.Format.Magic)
	if err := writeU32FromInt(out[4:], int(b.layout.Format.Version)); err != nil {
		return nil, err
	}

	for i, e := range entries {
		pos := headerSize + i*entrySize
		if err := writeU32FromInt(out[pos:], int(e.Offset)); err != nil {
			return nil, err
		}
		if err := writeU32FromInt(out[pos+4:], int(e.Length)); err != nil {
			return nil, err
		}
	}

	copy(out[headerSize+len(entries)*entrySize:], metadataBlock)
	for i, l := range b.lumps {
		copy(out[entries[i].Offset:], l.Data)
	}

	return out, nil
}

// WriteTo writes the serialized container to w.
func (b *Bsp) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile writes the serialized container to path.
func (b *Bsp) WriteFile(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
