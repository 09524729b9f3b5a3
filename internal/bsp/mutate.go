package bsp

import (
	"github.com/pkg/errors"

	"github.com/woozymasta/bsp-tool/internal/lump"
)

// SubstituteKeywords applies key and value substitutions to every entity
// record and re-encodes the entity lump. It returns the number of changed fields.
func (b *Bsp) SubstituteKeywords(rules lump.Substitutions) (int, error) {
	if err := rules.Validate(); err != nil {
		return 0, err
	}

	return b.editEntities(rules.Apply)
}

// LowercaseFilePaths lowercases entity file-reference values and texture
// names within scope. It returns the number of changed fields.
func (b *Bsp) LowercaseFilePaths(scope Scope) (int, error) {
	total := 0
	if scope.IncludesEntities() {
		n, err := b.editEntities(lump.LowercaseFileKeys)
		if err != nil {
			return total, err
		}
		total += n
	}

	if scope.IncludesTextures() {
		n, err := b.editTextures(func(t *lump.TextureLump) int { return t.LowercaseNames() })
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// StripLightmaps replaces the lightmap lump with an empty image set. The
// previous content is not decoded.
func (b *Bsp) StripLightmaps() error {
	lm := &lump.LightmapLump{Geometry: b.layout.Lightmap}
	lm.Strip()

	return b.SetCodec(LumpLightmaps, lm)
}

// Entities returns the decoded entity records.
func (b *Bsp) Entities() ([]lump.Entity, error) {
	el, err := b.entityLump()
	if err != nil {
		return nil, err
	}

	records, err := el.Records()
	if err != nil {
		return nil, errors.WithMessagef(err, "lump %q", LumpEntities)
	}

	return records, nil
}

// SetEntities re-encodes the entity lump from records.
func (b *Bsp) SetEntities(records []lump.Entity) error {
	el := &lump.EntityLump{}
	if err := el.SetRecords(records); err != nil {
		return errors.WithMessagef(err, "lump %q", LumpEntities)
	}

	return b.SetCodec(LumpEntities, el)
}

// Textures returns the decoded texture table.
func (b *Bsp) Textures() ([]lump.Texture, error) {
	tl, err := b.textureLump()
	if err != nil {
		return nil, err
	}

	return tl.Textures, nil
}

// editEntities applies edit to the entity records and re-encodes the lump
// when anything changed.
func (b *Bsp) editEntities(edit func([]lump.Entity) int) (int, error) {
	records, err := b.Entities()
	if err != nil {
		return 0, err
	}

	n := edit(records)
	if n == 0 {
		return 0, nil
	}

	return n, b.SetEntities(records)
}

// editTextures applies edit to the texture table and re-encodes the lump
// when anything changed.
func (b *Bsp) editTextures(edit func(*lump.TextureLump) int) (int, error) {
	tl, err := b.textureLump()
	if err != nil {
		return 0, err
	}

	n := edit(tl)
	if n == 0 {
		return 0, nil
	}

	return n, b.SetCodec(LumpTextures, tl)
}

// entityLump decodes the entity lump.
func (b *Bsp) entityLump() (*lump.EntityLump, error) {
	c, err := b.Codec(LumpEntities)
	if err != nil {
		return nil, err
	}

	el, ok := c.(*lump.EntityLump)
	if !ok {
		return nil, errors.Wrapf(ErrFormat, "lump %q is not entity text", LumpEntities)
	}

	return el, nil
}

// textureLump decodes the texture lump.
func (b *Bsp) textureLump() (*lump.TextureLump, error) {
	c, err := b.Codec(LumpTextures)
	if err != nil {
		return nil, err
	}

	tl, ok := c.(*lump.TextureLump)
	if !ok {
		return nil, errors.Wrapf(ErrFormat, "lump %q is not a texture table", LumpTextures)
	}

	return tl, nil
}
