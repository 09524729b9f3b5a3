package bsp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/bsp-tool/internal/lump"
)

func TestSubstituteKeywords(t *testing.T) {
	t.Parallel()

	b := populated(t, IBSP46)
	n, err := b.SubstituteKeywords(lump.Substitutions{
		Keys:   []lump.Substitution{{Old: "targetname", New: "target2"}},
		Values: []lump.Substitution{{Old: "FUNC_DOOR", New: "func_plat"}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	records, err := b.Entities()
	require.NoError(t, err)
	require.Len(t, records, 2)

	door := records[1]
	_, ok := door.Get("Targetname")
	require.False(t, ok)
	v, ok := door.Get("target2")
	require.True(t, ok)
	require.Equal(t, "door1", v)
	v, _ = door.Get("classname")
	require.Equal(t, "func_plat", v)

	// Round-trips through the container.
	data, err := b.Bytes()
	require.NoError(t, err)
	out, err := Parse(data)
	require.NoError(t, err)
	again, err := out.Entities()
	require.NoError(t, err)
	require.Equal(t, records, again)
}

func TestSubstituteKeywordsNoMatchKeepsText(t *testing.T) {
	t.Parallel()

	b := populated(t, IBSP46)
	before, _ := b.Lump(LumpEntities)
	data := append([]byte(nil), before.Data...)

	n, err := b.SubstituteKeywords(lump.Substitutions{Keys: []lump.Substitution{{Old: "nosuchkey", New: "other"}}})
	require.NoError(t, err)
	require.Zero(t, n)

	after, _ := b.Lump(LumpEntities)
	require.Equal(t, data, after.Data)
}

func TestSubstituteKeywordsInvalid(t *testing.T) {
	t.Parallel()

	b := populated(t, IBSP46)
	_, err := b.SubstituteKeywords(lump.Substitutions{Keys: []lump.Substitution{{Old: "", New: "x"}}})
	require.ErrorIs(t, err, ErrFormat)

	require.NoError(t, b.SetLump(LumpEntities, []byte("{\n\"classname\"\n\x00")))
	_, err = b.SubstituteKeywords(lump.Substitutions{Keys: []lump.Substitution{{Old: "a", New: "b"}}})
	require.ErrorIs(t, err, ErrFormat)
}

func TestLowercaseFilePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope    Scope
		changed  int
		model    string
		textures []string
	}{
		{scope: ScopeAll, changed: 3, model: "models/door.md3", textures: []string{"textures/base/floor", "textures/foo.tga"}},
		{scope: "", changed: 3, model: "models/door.md3", textures: []string{"textures/base/floor", "textures/foo.tga"}},
		{scope: ScopeEntities, changed: 1, model: "models/door.md3", textures: []string{"textures/base/Floor", "Textures/Foo.tga"}},
		{scope: ScopeTextures, changed: 2, model: "Models/Door.MD3", textures: []string{"textures/base/floor", "textures/foo.tga"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.scope), func(t *testing.T) {
			t.Parallel()

			b := populated(t, IBSP46)
			n, err := b.LowercaseFilePaths(tt.scope)
			require.NoError(t, err)
			require.Equal(t, tt.changed, n)

			records, err := b.Entities()
			require.NoError(t, err)
			v, _ := records[1].Get("model")
			require.Equal(t, tt.model, v)
			v, _ = records[0].Get("message")
			require.Equal(t, "Test Map", v)

			textures, err := b.Textures()
			require.NoError(t, err)
			names := make([]string, 0, len(textures))
			for _, tex := range textures {
				names = append(names, tex.Name)
			}
			require.Equal(t, tt.textures, names)
		})
	}
}

func TestStripLightmaps(t *testing.T) {
	t.Parallel()

	b := populated(t, FBSP1)
	full, err := b.Bytes()
	require.NoError(t, err)

	require.NoError(t, b.SetLump(LumpLightmaps, []byte{1, 2, 3}))
	require.NoError(t, b.StripLightmaps())

	lm, ok := b.Lump(LumpLightmaps)
	require.True(t, ok)
	require.Empty(t, lm.Data)
	require.True(t, lm.Present)

	stripped, err := b.Bytes()
	require.NoError(t, err)
	require.Len(t, stripped, len(full)-2*512*512*3)

	out, err := Parse(stripped)
	require.NoError(t, err)
	requireSameLumps(t, b, out)
}

func TestEntitiesEmpty(t *testing.T) {
	t.Parallel()

	b, err := New(IBSP46)
	require.NoError(t, err)

	records, err := b.Entities()
	require.NoError(t, err)
	require.Empty(t, records)

	n, err := b.LowercaseFilePaths(ScopeAll)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, b.Synthesized(), len(b.Lumps()))
}
