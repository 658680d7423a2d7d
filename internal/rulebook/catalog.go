package rulebook

import (
	"github.com/KirkDiggler/character-api/internal/errors"
)

// Catalog is the immutable lookup table for all content. Built once at
// process start and passed into the engine; safe for concurrent reads.
type Catalog struct {
	races       map[string]*RaceData
	subraceIdx  map[string]string // subrace slug -> parent race slug
	classes     map[string]*ClassData
	backgrounds map[string]*BackgroundData
	feats       map[string]*FeatData
	categories  map[string][]Option
}

// Config holds the content a Catalog is built from
type Config struct {
	Races       []RaceData
	Classes     []ClassData
	Backgrounds []BackgroundData
	Feats       []FeatData
	Categories  map[string][]Option
}

// New builds a catalog, rejecting duplicate or colliding slugs
func New(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}

	c := &Catalog{
		races:       make(map[string]*RaceData),
		subraceIdx:  make(map[string]string),
		classes:     make(map[string]*ClassData),
		backgrounds: make(map[string]*BackgroundData),
		feats:       make(map[string]*FeatData),
		categories:  make(map[string][]Option),
	}

	for i := range cfg.Races {
		race := cfg.Races[i]
		if _, exists := c.races[race.Slug]; exists {
			return nil, errors.AlreadyExistsf("duplicate race slug %s", race.Slug)
		}
		c.races[race.Slug] = &race
		for j := range race.Subraces {
			sub := race.Subraces[j].Slug
			if _, exists := c.subraceIdx[sub]; exists {
				return nil, errors.AlreadyExistsf("duplicate subrace slug %s", sub)
			}
			c.subraceIdx[sub] = race.Slug
		}
	}

	for i := range cfg.Classes {
		class := cfg.Classes[i]
		if _, exists := c.classes[class.Slug]; exists {
			return nil, errors.AlreadyExistsf("duplicate class slug %s", class.Slug)
		}
		c.classes[class.Slug] = &class
	}

	for i := range cfg.Backgrounds {
		bg := cfg.Backgrounds[i]
		if _, exists := c.backgrounds[bg.Slug]; exists {
			return nil, errors.AlreadyExistsf("duplicate background slug %s", bg.Slug)
		}
		c.backgrounds[bg.Slug] = &bg
	}

	for i := range cfg.Feats {
		feat := cfg.Feats[i]
		if _, exists := c.feats[feat.Slug]; exists {
			return nil, errors.AlreadyExistsf("duplicate feat slug %s", feat.Slug)
		}
		c.feats[feat.Slug] = &feat
	}

	for slug, options := range cfg.Categories {
		c.categories[slug] = options
	}

	return c, nil
}

// Race returns the race with the given slug
func (c *Catalog) Race(slug string) (*RaceData, bool) {
	race, ok := c.races[slug]
	return race, ok
}

// ResolveRace resolves a slug that may name either a race or a subrace.
// A subrace slug yields its parent race plus the subrace.
func (c *Catalog) ResolveRace(slug string) (race *RaceData, subrace *SubraceData, ok bool) {
	if race, found := c.races[slug]; found {
		return race, nil, true
	}
	if parent, found := c.subraceIdx[slug]; found {
		race := c.races[parent]
		sub, _ := race.Subrace(slug)
		return race, sub, true
	}
	return nil, nil, false
}

// Class returns the class with the given slug
func (c *Catalog) Class(slug string) (*ClassData, bool) {
	class, ok := c.classes[slug]
	return class, ok
}

// Background returns the background with the given slug
func (c *Catalog) Background(slug string) (*BackgroundData, bool) {
	bg, ok := c.backgrounds[slug]
	return bg, ok
}

// Feat returns the feat with the given slug
func (c *Catalog) Feat(slug string) (*FeatData, bool) {
	feat, ok := c.feats[slug]
	return feat, ok
}

// FeatOptions returns all feats as choice options
func (c *Catalog) FeatOptions() []Option {
	options := make([]Option, 0, len(c.feats))
	for _, feat := range c.feats {
		options = append(options, Option{Slug: feat.Slug, Name: feat.Name})
	}
	return options
}

// Category returns the named option pool
func (c *Catalog) Category(slug string) ([]Option, bool) {
	options, ok := c.categories[slug]
	return options, ok
}

// CategoryContains reports whether the category holds the given slug
func (c *Catalog) CategoryContains(category, slug string) bool {
	options, ok := c.categories[category]
	if !ok {
		return false
	}
	for _, opt := range options {
		if opt.Slug == slug {
			return true
		}
	}
	return false
}

// ExpandTemplate resolves a template's option list, expanding
// OptionsFrom categories.
func (c *Catalog) ExpandTemplate(tmpl *ChoiceTemplate) ([]Option, error) {
	if tmpl.OptionsFrom == "" {
		return tmpl.Options, nil
	}
	options, ok := c.categories[tmpl.OptionsFrom]
	if !ok {
		return nil, errors.NotFoundf("option category %s not found", tmpl.OptionsFrom)
	}
	return options, nil
}
