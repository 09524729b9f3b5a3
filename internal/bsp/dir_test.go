package bsp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDirRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "map")
			in := populated(t, f)
			require.NoError(t, in.WriteDir(dir))

			for _, name := range []string{SidecarName, "entities.txt", "textures.csv", "planes.bin", "lightmaps.d/lm_0001.tga"} {
				require.FileExists(t, filepath.Join(dir, name))
			}
			require.NoFileExists(t, filepath.Join(dir, "nodes.bin"))

			out, err := ReadDir(dir)
			require.NoError(t, err)
			requireSameLumps(t, in, out)

			var empty []string
			for _, l := range in.Lumps() {
				if len(l.Data) == 0 {
					empty = append(empty, l.Name)
				}
			}
			require.Equal(t, empty, out.Synthesized())

			// Packing the imported tree gives the same container.
			want, err := in.Bytes()
			require.NoError(t, err)
			got, err := out.Bytes()
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestDirSidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, populated(t, RBSP1).WriteDir(dir))

	raw, err := os.ReadFile(filepath.Join(dir, SidecarName))
	require.NoError(t, err)
	require.JSONEq(t, `{"bsp_magic_number": "RBSP", "bsp_version": 1}`, string(raw))

	require.NoError(t, os.WriteFile(filepath.Join(dir, SidecarName), []byte(`{"bsp_magic_number": "XBSP", "bsp_version": 1}`), 0o600))
	_, err = ReadDir(dir)
	require.ErrorIs(t, err, ErrFormat)

	require.NoError(t, os.WriteFile(filepath.Join(dir, SidecarName), []byte(`{not json`), 0o600))
	_, err = ReadDir(dir)
	require.ErrorIs(t, err, ErrFormat)
}

func TestDirWithoutSidecar(t *testing.T) {
	t.Parallel()

	t.Run("default format", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := populated(t, IBSP46)
		require.NoError(t, in.WriteDir(dir))
		require.NoError(t, os.Remove(filepath.Join(dir, SidecarName)))

		out, err := ReadDir(dir)
		require.NoError(t, err)
		require.Equal(t, IBSP46, out.Format())
		requireSameLumps(t, in, out)
	})

	t.Run("large lightmaps", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, populated(t, FBSP1).WriteDir(dir))
		require.NoError(t, os.Remove(filepath.Join(dir, SidecarName)))

		_, err := ReadDir(dir)
		require.ErrorIs(t, err, ErrSize)
	})

	t.Run("empty tree", func(t *testing.T) {
		t.Parallel()

		out, err := ReadDir(t.TempDir())
		require.NoError(t, err)
		require.Len(t, out.Synthesized(), len(out.Lumps()))
	})
}

func TestDirEntryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name: "ambiguous",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "planes.txt"), []byte("x"), 0o600))
			},
		},
		{
			name: "wrong extension",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Rename(filepath.Join(dir, "planes.bin"), filepath.Join(dir, "planes.csv")))
			},
		},
		{
			name: "unknown extension",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Rename(filepath.Join(dir, "textures.csv"), filepath.Join(dir, "textures.dat")))
			},
		},
		{
			name: "compound extension",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.Rename(filepath.Join(dir, "planes.bin"), filepath.Join(dir, "planes.old.bin")))
			},
		},
		{
			name: "malformed csv",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "textures.csv"), []byte("a,b\n"), 0o600))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, populated(t, IBSP46).WriteDir(dir))
			tt.setup(t, dir)

			_, err := ReadDir(dir)
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestWriteDirRemovesStaleEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := populated(t, IBSP46)
	require.NoError(t, b.WriteDir(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodes.bin"), []byte("stale"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "planes.txt"), []byte("stale"), 0o600))
	require.NoError(t, b.SetLump("models", nil))
	require.NoError(t, b.StripLightmaps())

	require.NoError(t, b.WriteDir(dir))
	require.NoFileExists(t, filepath.Join(dir, "nodes.bin"))
	require.NoFileExists(t, filepath.Join(dir, "planes.txt"))
	require.NoFileExists(t, filepath.Join(dir, "models.bin"))
	require.NoDirExists(t, filepath.Join(dir, "lightmaps.d"))
	require.FileExists(t, filepath.Join(dir, "planes.bin"))

	out, err := ReadDir(dir)
	require.NoError(t, err)
	requireSameLumps(t, b, out)
}

func TestWriteDirKeepsForeignLightmapFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := populated(t, IBSP46)
	require.NoError(t, b.WriteDir(dir))

	notes := filepath.Join(dir, "lightmaps.d", "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("rebake after vis"), 0o600))
	require.NoError(t, b.WriteDir(dir))
	require.FileExists(t, notes)

	out, err := ReadDir(dir)
	require.NoError(t, err)
	requireSameLumps(t, b, out)
}

func TestWriteDirKeepsUnchangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := populated(t, IBSP46)
	require.NoError(t, b.WriteDir(dir))

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	for _, name := range []string{"planes.bin", "entities.txt", "lightmaps.d/lm_0000.tga"} {
		require.NoError(t, os.Chtimes(filepath.Join(dir, name), past, past))
	}

	require.NoError(t, b.SetLump("planes", []byte{9, 9, 9}))
	require.NoError(t, b.WriteDir(dir))

	for _, name := range []string{"entities.txt", "lightmaps.d/lm_0000.tga"} {
		st, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.True(t, st.ModTime().Equal(past), name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "planes.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9, 9}, raw)
}
