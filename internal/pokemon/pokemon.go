// Package pokemon defines the immutable entity values browsed by the list and
// detail screens. The types carry semantic field names; the snake_case wire
// format lives in internal/pokeapi.
package pokemon

import (
	"fmt"
	"slices"
	"strings"
)

// Pokemon is one entity. Values are compared structurally with Equal.
type Pokemon struct {
	ID             int
	Name           string
	BaseExperience int
	Height         int
	Weight         int
	Order          int
	IsDefault      bool
	Sprites        Sprites
	Stats          []StatEntry
}

// Sprites holds image references. FrontDefault is empty when the API has none.
type Sprites struct {
	FrontDefault string
}

// StatEntry is one named numeric stat.
type StatEntry struct {
	BaseStat int
	Effort   int
	Stat     NamedResource
}

// NamedResource is a name plus the API URL describing it.
type NamedResource struct {
	Name string
	URL  string
}

// Equal reports structural equality.
func (p Pokemon) Equal(other Pokemon) bool {
	return p.ID == other.ID &&
		p.Name == other.Name &&
		p.BaseExperience == other.BaseExperience &&
		p.Height == other.Height &&
		p.Weight == other.Weight &&
		p.Order == other.Order &&
		p.IsDefault == other.IsDefault &&
		p.Sprites == other.Sprites &&
		slices.Equal(p.Stats, other.Stats)
}

// HasSprite reports whether a front image URL is known.
func (p Pokemon) HasSprite() bool {
	return strings.TrimSpace(p.Sprites.FrontDefault) != ""
}

// Stat returns the base value of the named stat.
func (p Pokemon) Stat(name string) (int, bool) {
	for _, s := range p.Stats {
		if s.Stat.Name == name {
			return s.BaseStat, true
		}
	}
	return 0, false
}

// TotalBaseStats sums every base stat.
func (p Pokemon) TotalBaseStats() int {
	total := 0
	for _, s := range p.Stats {
		total += s.BaseStat
	}
	return total
}

// DisplayName capitalises the API name and prefixes the dex number.
func (p Pokemon) DisplayName() string {
	name := p.Name
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("#%04d %s", p.ID, name)
}

// Mock builds a deterministic entity for previews and tests.
func Mock(id int) Pokemon {
	stats := make([]StatEntry, 0, len(mockStatNames))
	for i, name := range mockStatNames {
		stats = append(stats, StatEntry{
			BaseStat: 45,
			Stat:     NamedResource{Name: name, URL: fmt.Sprintf("https://pokeapi.co/api/v2/stat/%d/", i+1)},
		})
	}
	return Pokemon{
		ID:        id,
		Name:      "bulbasaur",
		Height:    40,
		Weight:    10,
		IsDefault: true,
		Sprites: Sprites{
			FrontDefault: fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id),
		},
		Stats: stats,
	}
}

// MockRange builds Mock entities for ids [from, to].
func MockRange(from, to int) []Pokemon {
	if to < from {
		return nil
	}
	out := make([]Pokemon, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, Mock(id))
	}
	return out
}

var mockStatNames = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}
