// Package probe inspects a path and reports whether it holds a BSP container
// or a directory-form tree.
package probe

import (
	"io"
	"os"
)

// Kind is what a probed path holds.
type Kind string

const (
	// Directory is a directory (candidate directory-form tree).
	Directory Kind = "DIR"
	// Container is a file starting with a known BSP magic.
	Container Kind = "BSP"
	// Unknown is a file with an unrecognized header.
	Unknown Kind = "UNKNOWN"
)

// Magics are the recognized 4-byte container tags.
var Magics = []string{"IBSP", "RBSP", "FBSP"}

// Path reads the first 4 bytes of path and reports what it holds.
// For files, magic is the raw 4-byte tag.
func Path(path string) (kind Kind, magic string, err error) {
	st, err := os.Stat(path)
	if err != nil {
		return Unknown, "", err
	}
	if st.IsDir() {
		return Directory, "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Unknown, "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	var hdr [4]byte
	n, err := io.ReadFull(f, hdr[:])
	if err != nil {
		return Unknown, "", err
	}
	if n != 4 {
		return Unknown, "", io.ErrUnexpectedEOF
	}

	magic = string(hdr[:])
	for _, m := range Magics {
		if m == magic {
			return Container, magic, nil
		}
	}

	return Unknown, magic, nil
}
