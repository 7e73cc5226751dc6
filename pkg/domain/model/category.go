package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DisplayCategory is a category of the public taxonomy shown to users. Each
// one absorbs a set of free-form category names used by the report API.
type DisplayCategory struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Color   string   `yaml:"color" json:"color"`
	Icon    string   `yaml:"icon" json:"icon"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Validate validates the category
func (c *DisplayCategory) Validate() error {
	if c.ID == "" {
		return goerr.New("category ID is required")
	}
	if c.Name == "" {
		return goerr.New("category name is required")
	}
	if c.Color == "" {
		return goerr.New("category color is required", goerr.V("id", c.ID))
	}
	return nil
}

// CategoriesConfig is the on-disk form of the category taxonomy
type CategoriesConfig struct {
	Fallback   string            `yaml:"fallback"`
	Categories []DisplayCategory `yaml:"categories"`
}

// Validate validates the categories configuration
func (c *CategoriesConfig) Validate() error {
	if len(c.Categories) == 0 {
		return goerr.New("at least one category is required")
	}

	idMap := make(map[string]bool)
	aliasMap := make(map[string]string)
	for i, cat := range c.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category at index",
				goerr.V("index", i),
				goerr.V("id", cat.ID))
		}

		if idMap[cat.ID] {
			return goerr.New("duplicate category ID",
				goerr.V("id", cat.ID))
		}
		idMap[cat.ID] = true

		for _, alias := range cat.Aliases {
			key := normalizeCategoryKey(alias)
			if owner, ok := aliasMap[key]; ok && owner != cat.ID {
				return goerr.New("category alias mapped twice",
					goerr.V("alias", alias),
					goerr.V("first", owner),
					goerr.V("second", cat.ID))
			}
			aliasMap[key] = cat.ID
		}
	}

	if c.Fallback == "" {
		return goerr.New("fallback category is required")
	}
	if !idMap[c.Fallback] {
		return goerr.New("fallback category is not defined",
			goerr.V("fallback", c.Fallback))
	}

	return nil
}

// CategoryTaxonomy maps API category names onto display categories. Resolve
// is total: unmapped names land in the fallback category.
type CategoryTaxonomy struct {
	categories []DisplayCategory
	byID       map[string]int
	byAlias    map[string]int
	fallback   int
}

// NewCategoryTaxonomy builds a taxonomy from a validated configuration
func NewCategoryTaxonomy(cfg *CategoriesConfig) (*CategoryTaxonomy, error) {
	if cfg == nil {
		return nil, goerr.New("categories config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid categories config")
	}

	t := &CategoryTaxonomy{
		categories: make([]DisplayCategory, len(cfg.Categories)),
		byID:       make(map[string]int, len(cfg.Categories)),
		byAlias:    make(map[string]int),
	}
	for i, cat := range cfg.Categories {
		cat.Aliases = append([]string(nil), cat.Aliases...)
		t.categories[i] = cat
		t.byID[cat.ID] = i
		// A category's own name always resolves to itself
		t.byAlias[normalizeCategoryKey(cat.Name)] = i
	}
	for i, cat := range cfg.Categories {
		for _, alias := range cat.Aliases {
			t.byAlias[normalizeCategoryKey(alias)] = i
		}
	}
	t.fallback = t.byID[cfg.Fallback]

	return t, nil
}

// Resolve returns the display category for an API category name
func (t *CategoryTaxonomy) Resolve(apiCategory string) DisplayCategory {
	if i, ok := t.byAlias[normalizeCategoryKey(apiCategory)]; ok {
		return t.categories[i]
	}
	return t.categories[t.fallback]
}

// Fallback returns the catch-all category
func (t *CategoryTaxonomy) Fallback() DisplayCategory {
	return t.categories[t.fallback]
}

// FindByID finds a display category by its ID
func (t *CategoryTaxonomy) FindByID(id string) (DisplayCategory, bool) {
	i, ok := t.byID[id]
	if !ok {
		return DisplayCategory{}, false
	}
	return t.categories[i], true
}

// APICategories returns the API category names folded into the display
// category. The fallback category usually has none.
func (t *CategoryTaxonomy) APICategories(id string) []string {
	i, ok := t.byID[id]
	if !ok {
		return nil
	}
	return append([]string(nil), t.categories[i].Aliases...)
}

// All returns the display categories in configuration order
func (t *CategoryTaxonomy) All() []DisplayCategory {
	return append([]DisplayCategory(nil), t.categories...)
}

func normalizeCategoryKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
