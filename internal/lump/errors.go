package lump

import "github.com/pkg/errors"

// Sentinel errors for lump codecs. Call sites wrap them with the failing lump
// or file, use errors.Is in callers.
var (
	// ErrFormat means a lump, file name or file content is not in a recognized form.
	ErrFormat = errors.New("format error")
	// ErrSize means a value does not fit its fixed-size field or image geometry.
	ErrSize = errors.New("size error")
)
