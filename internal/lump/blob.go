package lump

import (
	"os"
	"path/filepath"
)

// BlobLump is an opaque lump passed through unchanged.
type BlobLump struct {
	Data []byte
}

// Kind returns Blob.
func (l *BlobLump) Kind() Kind { return Blob }

// Decode stores a copy of data.
func (l *BlobLump) Decode(data []byte) error {
	l.Data = append([]byte(nil), data...)
	return nil
}

// Encode returns the stored bytes.
func (l *BlobLump) Encode() ([]byte, error) {
	return l.Data, nil
}

// ReadFile loads the blob from a file.
func (l *BlobLump) ReadFile(path string) error {
	return readRaw(l, path)
}

// WriteFile stores the blob in a file.
func (l *BlobLump) WriteFile(path string) error {
	return writeRaw(l, path)
}

// ReadDirEntry loads the blob from dir/name.
func (l *BlobLump) ReadDirEntry(dir string, name string) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	l.Data = data
	return nil
}

// WriteDirEntry writes dir/<lumpName>.bin.
func (l *BlobLump) WriteDirEntry(dir string, lumpName string) (string, error) {
	name := lumpName + Blob.Ext()
	return name, writeFileIfChanged(filepath.Join(dir, name), l.Data)
}

// Empty reports a zero-length blob.
func (l *BlobLump) Empty() bool {
	return len(l.Data) == 0
}
