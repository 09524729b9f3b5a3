package bsp

import "github.com/woozymasta/bsp-tool/internal/lump"

// Sentinel errors for BSP operations. Use errors.Is in callers.
var (
	// ErrFormat means an unrecognized magic/version, lump file extension,
	// ambiguous lump file match or malformed container.
	ErrFormat = lump.ErrFormat
	// ErrSize means a value does not fit its fixed field, or a lightmap blob
	// or image does not match the configured geometry.
	ErrSize = lump.ErrSize
)
