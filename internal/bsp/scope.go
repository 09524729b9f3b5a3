package bsp

// Scope controls which lumps LowercaseFilePaths processes.
type Scope string

const (
	// ScopeAll means process entities and textures.
	ScopeAll Scope = "all"
	// ScopeEntities means process only entity file-reference keys.
	ScopeEntities Scope = "entities"
	// ScopeTextures means process only texture names.
	ScopeTextures Scope = "textures"
)

// IncludesEntities returns true if the scope includes entity records.
func (s Scope) IncludesEntities() bool {
	return s == ScopeAll || s == ScopeEntities || s == ""
}

// IncludesTextures returns true if the scope includes the texture table.
func (s Scope) IncludesTextures() bool {
	return s == ScopeAll || s == ScopeTextures || s == ""
}
