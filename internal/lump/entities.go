package lump

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Entity is one brace-delimited record of the entity lump.
type Entity struct {
	Fields []Field // key/value pairs, keys unique within the record
}

// Field is a single "key" "value" pair.
type Field struct {
	Key   string
	Value string
}

// Get returns the value of key.
func (e *Entity) Get(key string) (string, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return "", false
}

// Set replaces the value of key or appends a new field.
func (e *Entity) Set(key string, value string) {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			e.Fields[i].Value = value
			return
		}
	}

	e.Fields = append(e.Fields, Field{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (e *Entity) Delete(key string) bool {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			e.Fields = append(e.Fields[:i], e.Fields[i+1:]...)
			return true
		}
	}

	return false
}

// ParseEntities parses entity text (without the NUL terminator) into records.
// A repeated key inside one record keeps its first position and last value.
func ParseEntities(text []byte) ([]Entity, error) {
	var (
		out []Entity
		cur *Entity
		key *string
	)

	for pos := 0; pos < len(text); {
		c := text[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			pos++

		case c == '/' && pos+1 < len(text) && text[pos+1] == '/':
			nl := bytes.IndexByte(text[pos:], '\n')
			if nl < 0 {
				pos = len(text)
			} else {
				pos += nl + 1
			}

		case c == '{':
			if cur != nil {
				return nil, errors.Wrapf(ErrFormat, "entities: nested '{' at offset %d", pos)
			}
			cur = &Entity{}
			pos++

		case c == '}':
			if cur == nil {
				return nil, errors.Wrapf(ErrFormat, "entities: unexpected '}' at offset %d", pos)
			}
			if key != nil {
				return nil, errors.Wrapf(ErrFormat, "entities: key %q without value at offset %d", *key, pos)
			}
			out = append(out, *cur)
			cur = nil
			pos++

		case c == '"':
			end := bytes.IndexByte(text[pos+1:], '"')
			if end < 0 {
				return nil, errors.Wrapf(ErrFormat, "entities: unterminated string at offset %d", pos)
			}
			if cur == nil {
				return nil, errors.Wrapf(ErrFormat, "entities: string outside of record at offset %d", pos)
			}

			s := string(text[pos+1 : pos+1+end])
			pos += end + 2
			if key == nil {
				key = &s
				continue
			}
			cur.Set(*key, s)
			key = nil

		default:
			return nil, errors.Wrapf(ErrFormat, "entities: unexpected byte %q at offset %d", c, pos)
		}
	}

	if cur != nil {
		return nil, errors.Wrap(ErrFormat, "entities: unterminated record")
	}

	return out, nil
}

// FormatEntities serializes records as quoted key/value lines inside braces.
func FormatEntities(records []Entity) ([]byte, error) {
	var buf bytes.Buffer
	for i, e := range records {
		buf.WriteString("{\n")
		for _, f := range e.Fields {
			if strings.ContainsRune(f.Key, '"') || strings.ContainsRune(f.Value, '"') {
				return nil, errors.Wrapf(ErrFormat, "entities: record %d: field %q contains a quote", i, f.Key)
			}

			buf.WriteByte('"')
			buf.WriteString(f.Key)
			buf.WriteString(`" "`)
			buf.WriteString(f.Value)
			buf.WriteString("\"\n")
		}
		buf.WriteString("}\n")
	}

	return buf.Bytes(), nil
}

// EntityLump is the entity text lump. Text excludes the NUL terminator.
// Text is kept verbatim until records are replaced with SetRecords.
type EntityLump struct {
	Text []byte
}

// Kind returns Entities.
func (l *EntityLump) Kind() Kind { return Entities }

// Decode keeps the text up to the first NUL byte and drops the rest.
func (l *EntityLump) Decode(data []byte) error {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	l.Text = append([]byte(nil), data...)
	return nil
}

// Encode returns the text followed by a single NUL byte. Empty text encodes
// to an empty lump.
func (l *EntityLump) Encode() ([]byte, error) {
	if len(l.Text) == 0 {
		return nil, nil
	}

	out := make([]byte, 0, len(l.Text)+1)
	out = append(out, l.Text...)
	return append(out, 0), nil
}

// Records parses the entity records.
func (l *EntityLump) Records() ([]Entity, error) {
	return ParseEntities(l.Text)
}

// SetRecords replaces the text with serialized records.
func (l *EntityLump) SetRecords(records []Entity) error {
	text, err := FormatEntities(records)
	if err != nil {
		return err
	}

	l.Text = text
	return nil
}

// ReadFile loads the binary lump from a file.
func (l *EntityLump) ReadFile(path string) error {
	return readRaw(l, path)
}

// WriteFile stores the binary lump in a file.
func (l *EntityLump) WriteFile(path string) error {
	return writeRaw(l, path)
}

// ReadDirEntry loads the text from dir/name.
func (l *EntityLump) ReadDirEntry(dir string, name string) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	return l.Decode(data)
}

// WriteDirEntry writes the text to dir/<lumpName>.txt.
func (l *EntityLump) WriteDirEntry(dir string, lumpName string) (string, error) {
	name := lumpName + Entities.Ext()
	return name, writeFileIfChanged(filepath.Join(dir, name), l.Text)
}

// Empty reports empty text.
func (l *EntityLump) Empty() bool {
	return len(l.Text) == 0
}
