package lump

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKindExt(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{Blob, Entities, Textures, Lightmaps} {
		require.Equal(t, k, KindByExt(k.Ext()), k.String())
	}
	require.Equal(t, Unknown, KindByExt(".dat"))
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(Lightmaps, LargeLightmap)
	require.NoError(t, err)
	require.Equal(t, Lightmaps, c.Kind())
	require.True(t, c.Empty())

	_, err = New(Lightmaps, Geometry{})
	require.ErrorIs(t, err, ErrSize)

	_, err = New(Unknown, SmallLightmap)
	require.ErrorIs(t, err, ErrFormat)
}

func TestStandaloneFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "textures.lump")
	in := &TextureLump{Textures: []Texture{{Name: "textures/a", Flags: 1, Contents: 2}}}
	require.NoError(t, in.WriteFile(path))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(TextureRecordSize), st.Size())

	out := &TextureLump{}
	require.NoError(t, out.ReadFile(path))
	require.Equal(t, in.Textures, out.Textures)
}

func TestBlobDirEntryKeepsUnchangedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := &BlobLump{Data: []byte{1, 2, 3}}
	name, err := b.WriteDirEntry(dir, "planes")
	require.NoError(t, err)
	require.Equal(t, "planes.bin", name)

	path := filepath.Join(dir, name)
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	_, err = b.WriteDirEntry(dir, "planes")
	require.NoError(t, err)
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, st.ModTime().Equal(past))

	b.Data = []byte{4, 5, 6}
	_, err = b.WriteDirEntry(dir, "planes")
	require.NoError(t, err)

	got := &BlobLump{}
	require.NoError(t, got.ReadDirEntry(dir, name))
	require.Equal(t, b.Data, got.Data)
}
