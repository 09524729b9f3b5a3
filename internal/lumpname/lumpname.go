// Package lumpname parses directory-form entry names into lump name and codec kind.
package lumpname

import (
	"strings"

	"github.com/woozymasta/bsp-tool/internal/lump"
)

// Parsed represents the parsed directory-form entry.
type Parsed struct {
	Lump string    // Lump name (e.g. entities)
	Ext  string    // Extension with dot (e.g. .txt)
	Kind lump.Kind // Codec kind owning the extension, lump.Unknown if none
}

// ParseBase parses the entry information from a base name.
// Names without a lump part or without an extension are rejected.
func ParseBase(base string) (Parsed, bool) {
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return Parsed{}, false
	}

	name := base[:idx]
	ext := base[idx:]
	if strings.ContainsAny(name, `/\`) {
		return Parsed{}, false
	}

	return Parsed{Lump: name, Ext: ext, Kind: lump.KindByExt(ext)}, true
}

// Base returns the directory-form entry name for a lump of the given kind.
func Base(lumpName string, kind lump.Kind) string {
	return lumpName + kind.Ext()
}
