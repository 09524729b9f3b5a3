package lump

import (
	"os"

	"github.com/cespare/xxhash"
)

// writeFileIfChanged writes data unless the file already holds the same bytes,
// so unchanged lumps keep their modification time.
func writeFileIfChanged(path string, data []byte) error {
	if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() && st.Size() == int64(len(data)) {
		old, err := os.ReadFile(path)
		if err == nil && xxhash.Sum64(old) == xxhash.Sum64(data) {
			return nil
		}
	}

	return os.WriteFile(path, data, 0o644)
}
