package lump

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Texture table record layout.
const (
	TextureNameSize   = 64                  // null-padded name field
	TextureRecordSize = TextureNameSize + 8 // name + flags + contents
)

// Texture is one texture (shader) table record.
type Texture struct {
	Name     string // material name, at most 63 bytes
	Flags    uint32 // surface flags
	Contents uint32 // contents bitmask
}

// TextureLump is the texture table lump.
type TextureLump struct {
	Textures []Texture
}

// Kind returns Textures.
func (l *TextureLump) Kind() Kind { return Textures }

// Decode splits data into 72-byte records.
func (l *TextureLump) Decode(data []byte) error {
	if len(data)%TextureRecordSize != 0 {
		return errors.Wrapf(ErrSize, "textures: length %d is not a multiple of %d", len(data), TextureRecordSize)
	}

	out := make([]Texture, 0, len(data)/TextureRecordSize)
	for pos := 0; pos < len(data); pos += TextureRecordSize {
		rec := data[pos : pos+TextureRecordSize]
		name := rec[:TextureNameSize]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}

		out = append(out, Texture{
			Name:     string(name),
			Flags:    binary.LittleEndian.Uint32(rec[TextureNameSize:]),
			Contents: binary.LittleEndian.Uint32(rec[TextureNameSize+4:]),
		})
	}

	l.Textures = out
	return nil
}

// Encode re-pads every name to 64 bytes. A name needs room for one NUL byte.
func (l *TextureLump) Encode() ([]byte, error) {
	if len(l.Textures) == 0 {
		return nil, nil
	}

	out := make([]byte, len(l.Textures)*TextureRecordSize)
	for i, t := range l.Textures {
		if len(t.Name) >= TextureNameSize {
			return nil, errors.Wrapf(ErrSize, "textures: record %d: name %q is %d bytes, limit is %d",
				i, t.Name, len(t.Name), TextureNameSize-1)
		}

		rec := out[i*TextureRecordSize : (i+1)*TextureRecordSize]
		copy(rec, t.Name)
		binary.LittleEndian.PutUint32(rec[TextureNameSize:], t.Flags)
		binary.LittleEndian.PutUint32(rec[TextureNameSize+4:], t.Contents)
	}

	return out, nil
}

// LowercaseNames lowercases every material name and returns how many changed.
func (l *TextureLump) LowercaseNames() int {
	n := 0
	for i := range l.Textures {
		lower := strings.ToLower(l.Textures[i].Name)
		if lower != l.Textures[i].Name {
			l.Textures[i].Name = lower
			n++
		}
	}

	return n
}

// ReadFile loads the binary lump from a file.
func (l *TextureLump) ReadFile(path string) error {
	return readRaw(l, path)
}

// WriteFile stores the binary lump in a file.
func (l *TextureLump) WriteFile(path string) error {
	return writeRaw(l, path)
}

// ReadDirEntry loads the table from a name,flags,contents CSV file.
func (l *TextureLump) ReadDirEntry(dir string, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	var out []Texture
	for n := 1; ; n++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(ErrFormat, "textures: %s: %v", name, err)
		}

		flags, err := parseTextureBits(rec[1])
		if err != nil {
			return errors.Wrapf(err, "textures: %s: record %d: flags", name, n)
		}
		contents, err := parseTextureBits(rec[2])
		if err != nil {
			return errors.Wrapf(err, "textures: %s: record %d: contents", name, n)
		}

		out = append(out, Texture{Name: rec[0], Flags: flags, Contents: contents})
	}

	l.Textures = out
	return nil
}

// WriteDirEntry writes dir/<lumpName>.csv with flags and contents as 32-digit binary strings.
func (l *TextureLump) WriteDirEntry(dir string, lumpName string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, t := range l.Textures {
		if err := w.Write([]string{t.Name, formatTextureBits(t.Flags), formatTextureBits(t.Contents)}); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	name := lumpName + Textures.Ext()
	return name, writeFileIfChanged(filepath.Join(dir, name), buf.Bytes())
}

// Empty reports an empty table.
func (l *TextureLump) Empty() bool {
	return len(l.Textures) == 0
}

// formatTextureBits renders v as a fixed-width binary-digit string.
func formatTextureBits(v uint32) string {
	return fmt.Sprintf("%032b", v)
}

// parseTextureBits accepts a 32-digit binary string or a decimal integer.
func parseTextureBits(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	base := 10
	if len(s) == 32 && strings.Trim(s, "01") == "" {
		base = 2
	}

	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "invalid value %q", s)
	}

	return uint32(v), nil
}
