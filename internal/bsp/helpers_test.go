package bsp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/bsp-tool/internal/lump"
)

const testEntities = "{\n\"classname\" \"worldspawn\"\n\"message\" \"Test Map\"\n}\n" +
	"{\n\"classname\" \"func_door\"\n\"Targetname\" \"door1\"\n\"model\" \"Models/Door.MD3\"\n}\n"

// populated returns a container of format f with every lump kind filled.
// Every third blob lump is left empty and blob lengths are odd to exercise padding.
func populated(t *testing.T, f Format) *Bsp {
	t.Helper()

	b, err := New(f)
	require.NoError(t, err)

	geom := b.Layout().Lightmap
	for i, l := range b.Lumps() {
		switch l.Kind {
		case lump.Entities:
			require.NoError(t, b.SetCodec(l.Name, &lump.EntityLump{Text: []byte(testEntities)}))

		case lump.Textures:
			require.NoError(t, b.SetCodec(l.Name, &lump.TextureLump{Textures: []lump.Texture{
				{Name: "textures/base/Floor", Flags: 0x10, Contents: 1},
				{Name: "Textures/Foo.tga", Flags: 0, Contents: 0x2000000},
			}}))

		case lump.Lightmaps:
			lm := &lump.LightmapLump{Geometry: geom}
			for k := 0; k < 2; k++ {
				img := make([]byte, geom.ImageSize())
				for p := range img {
					img[p] = byte(p + k)
				}
				lm.Images = append(lm.Images, img)
			}
			require.NoError(t, b.SetCodec(l.Name, lm))

		default:
			if i%3 == 0 {
				continue
			}
			data := make([]byte, i*7+1)
			for p := range data {
				data[p] = byte(i + p)
			}
			require.NoError(t, b.SetLump(l.Name, data))
		}
	}

	return b
}

// requireSameLumps checks that two containers hold the same format and lump bytes.
func requireSameLumps(t *testing.T, want *Bsp, got *Bsp) {
	t.Helper()

	require.Equal(t, want.Format(), got.Format())
	require.Len(t, got.Lumps(), len(want.Lumps()))
	for i, l := range want.Lumps() {
		require.Equal(t, l.Name, got.Lumps()[i].Name)
		require.Equal(t, l.Data, got.Lumps()[i].Data, "lump %q", l.Name)
	}
}
