package bsp

import (
	"math"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// readU32 reads a little-endian 32-bit integer from a byte slice.
func readU32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// writeU32FromInt writes a little-endian 32-bit integer to a byte slice.
func writeU32FromInt(b []byte, v int) error {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return errors.Wrapf(ErrSize, "value %d out of uint32 range", v)
	}
	if len(b) < 4 {
		return errors.New("buffer too small for uint32")
	}

	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)

	return nil
}

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + 3) &^ 3
}

// Digest returns a deterministic 64-bit content hash of lump bytes.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}
