// Package achievements holds the achievement catalog and the rules that
// decide when each one is earned.
package achievements

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Achievement is a catalog entry.
type Achievement struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

// Catalog is the ordered list of known achievements.
type Catalog struct {
	list []Achievement
	byID map[string]int
}

// Parse reads a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var list []Achievement
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse achievement catalog: %w", err)
	}
	c := &Catalog{list: list, byID: make(map[string]int, len(list))}
	for i, a := range list {
		if a.ID == "" {
			return nil, fmt.Errorf("achievement %d has no id", i)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement id %q", a.ID)
		}
		c.byID[a.ID] = i
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// All returns every achievement in catalog order.
func (c *Catalog) All() []Achievement {
	out := make([]Achievement, len(c.list))
	copy(out, c.list)
	return out
}

// Len returns the number of achievements.
func (c *Catalog) Len() int { return len(c.list) }

// Get looks up an achievement by id.
func (c *Catalog) Get(id string) (Achievement, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Achievement{}, false
	}
	return c.list[i], true
}

// Resolve maps ids to catalog entries, skipping unknown ids.
func (c *Catalog) Resolve(ids []string) []Achievement {
	out := make([]Achievement, 0, len(ids))
	for _, id := range ids {
		if a, ok := c.Get(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// Sort orders ids by catalog position. Unknown ids are dropped.
func (c *Catalog) Sort(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	out := make([]string, 0, len(ids))
	for _, a := range c.list {
		if seen[a.ID] {
			out = append(out, a.ID)
		}
	}
	return out
}
