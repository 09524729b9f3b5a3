package bsp

import (
	"os"

	"github.com/pkg/errors"
)

// Binary container layout.
const (
	headerSize = 8 // magic(4) + version(4)
	entrySize  = 8 // offset(4) + length(4)
)

// ReadFile reads and parses a packed container file.
func ReadFile(path string) (*Bsp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	b, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}

	return b, nil
}

// Parse parses a packed container. Every lump is copied out of data.
//
// For layouts with the advertisements heuristic, the advertisements lump is
// accepted only when its stored offset is the next free offset after the
// lump with the largest offset seen so far (that lump's offset plus its
// length, aligned to 4) and its range fits in data. Otherwise it is treated as absent, with the largest
// offset seen and a zero length, because some compilers leave garbage in that
// slot. This is a best-effort test and may reject a crafted file laid out
// differently.
func Parse(data []byte) (*Bsp, error) {
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrFormat, "file too short for header: %d bytes", len(data))
	}

	f := Format{Magic: string(data[:4]), Version: readU32(data[4:8])}
	b, err := New(f)
	if err != nil {
		return nil, err
	}

	tableEnd := headerSize + len(b.lumps)*entrySize
	if len(data) < tableEnd {
		return nil, errors.Wrapf(ErrFormat, "%s: file too short for lump directory: %d bytes, want %d", f, len(data), tableEnd)
	}

	largestOffset, largestLength := 0, 0
	for i, l := range b.lumps {
		entry := data[headerSize+i*entrySize:]
		offset := int(readU32(entry))
		length := int(readU32(entry[4:]))

		if b.layout.Advertisements && l.Name == LumpAdvertisements {
			next := align4(largestOffset + largestLength)
			if offset != next || length > len(data)-offset {
				l.Offset = uint32(largestOffset)
				l.Length = 0
				l.Present = false
				continue
			}
		}

		if offset > len(data) || length > len(data)-offset {
			return nil, errors.Wrapf(ErrFormat, "%s: lump %q range %d+%d exceeds file size %d", f, l.Name, offset, length, len(data))
		}

		l.Data = append([]byte(nil), data[offset:offset+length]...)
		l.Offset = uint32(offset)
		l.Length = uint32(length)
		l.Present = true

		if offset >= largestOffset {
			largestOffset = offset
			largestLength = length
		}
	}

	return b, nil
}
