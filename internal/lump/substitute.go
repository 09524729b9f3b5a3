package lump

import (
	"strings"

	"github.com/pkg/errors"
)

// Substitution replaces Old with New, matching Old case-insensitively.
type Substitution struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Substitutions is a keyword substitution rule set for entity records.
type Substitutions struct {
	Keys   []Substitution `json:"keys,omitempty"`   // key renames
	Values []Substitution `json:"values,omitempty"` // whole-value replacements
}

// FileKeys are entity keys whose values reference files or materials.
var FileKeys = []string{
	"model",
	"model2",
	"shader",
	"targetShaderName",
	"targetShaderNewName",
	"noise",
	"music",
	"sound",
	"sound1to2",
	"sound2to1",
	"soundPos1",
	"soundPos2",
}

// Validate checks the rule set before it is applied.
// This is intended to catch empty or ambiguous rules early.
func (s Substitutions) Validate() error {
	for kind, list := range map[string][]Substitution{"key": s.Keys, "value": s.Values} {
		seen := map[string]string{}
		for _, r := range list {
			if strings.TrimSpace(r.Old) == "" {
				return errors.Wrapf(ErrFormat, "%s substitution with empty old value", kind)
			}
			if kind == "key" && strings.TrimSpace(r.New) == "" {
				return errors.Wrapf(ErrFormat, "key substitution %q with empty new key", r.Old)
			}
			if strings.ContainsRune(r.Old, '"') || strings.ContainsRune(r.New, '"') {
				return errors.Wrapf(ErrFormat, "%s substitution %q contains a quote", kind, r.Old)
			}

			low := strings.ToLower(r.Old)
			if prev, ok := seen[low]; ok {
				return errors.Wrapf(ErrFormat, "duplicate %s substitution for %q: %q and %q", kind, r.Old, prev, r.New)
			}
			seen[low] = r.New
		}
	}

	return nil
}

// Apply rewrites matching keys and values in every record and returns the
// number of changed fields. Other fields keep their original case.
func (s Substitutions) Apply(records []Entity) int {
	n := 0
	for i := range records {
		e := &records[i]
		for _, r := range s.Keys {
			n += e.renameKey(r.Old, r.New)
		}

		for _, r := range s.Values {
			for j := range e.Fields {
				f := &e.Fields[j]
				if strings.EqualFold(f.Value, r.Old) && f.Value != r.New {
					f.Value = r.New
					n++
				}
			}
		}
	}

	return n
}

// renameKey renames every key matching old case-insensitively to newKey.
// The renamed value replaces a pre-existing newKey field.
func (e *Entity) renameKey(old string, newKey string) int {
	renamed := 0
	pos := -1
	kept := make([]Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		if !strings.EqualFold(f.Key, old) {
			kept = append(kept, f)
			continue
		}

		if f.Key != newKey {
			renamed++
		}
		if pos < 0 {
			pos = len(kept)
			kept = append(kept, Field{Key: newKey, Value: f.Value})
		} else {
			kept[pos].Value = f.Value
		}
	}

	if pos < 0 {
		return 0
	}

	out := kept[:0]
	for i, f := range kept {
		if i != pos && f.Key == newKey {
			renamed++
			continue
		}
		out = append(out, f)
	}

	e.Fields = out
	return renamed
}

// LowercaseFileKeys lowercases values of FileKeys fields and returns how many changed.
func LowercaseFileKeys(records []Entity) int {
	n := 0
	for i := range records {
		for j := range records[i].Fields {
			f := &records[i].Fields[j]
			if !isFileKey(f.Key) {
				continue
			}

			lower := strings.ToLower(f.Value)
			if lower != f.Value {
				f.Value = lower
				n++
			}
		}
	}

	return n
}

// isFileKey reports whether key is one of FileKeys, ignoring case.
func isFileKey(key string) bool {
	for _, k := range FileKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}

	return false
}
