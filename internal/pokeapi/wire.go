package pokeapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atomicstack/pokedex/internal/pokemon"
)

type namedResourceWire struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type statWire struct {
	BaseStat int               `json:"base_stat"`
	Effort   int               `json:"effort"`
	Stat     namedResourceWire `json:"stat"`
}

type spritesWire struct {
	FrontDefault *string `json:"front_default"`
}

type pokemonWire struct {
	ID             *int        `json:"id"`
	Name           string      `json:"name"`
	BaseExperience *int        `json:"base_experience"`
	Height         int         `json:"height"`
	Weight         int         `json:"weight"`
	Order          int         `json:"order"`
	IsDefault      bool        `json:"is_default"`
	Sprites        spritesWire `json:"sprites"`
	Stats          []statWire  `json:"stats"`
}

type localizedNameWire struct {
	Name     string            `json:"name"`
	Language namedResourceWire `json:"language"`
}

type flavorTextWire struct {
	FlavorText string            `json:"flavor_text"`
	Language   namedResourceWire `json:"language"`
}

type speciesWire struct {
	ID                *int                `json:"id"`
	Names             []localizedNameWire `json:"names"`
	FlavorTextEntries []flavorTextWire    `json:"flavor_text_entries"`
}

var errMissingID = errors.New("payload has no id")

// DecodePokemon maps one /pokemon/{id} payload onto the entity type.
func DecodePokemon(data []byte) (pokemon.Pokemon, error) {
	var w pokemonWire
	if err := json.Unmarshal(data, &w); err != nil {
		return pokemon.Pokemon{}, err
	}
	if w.ID == nil {
		return pokemon.Pokemon{}, errMissingID
	}
	p := pokemon.Pokemon{
		ID:        *w.ID,
		Name:      w.Name,
		Height:    w.Height,
		Weight:    w.Weight,
		Order:     w.Order,
		IsDefault: w.IsDefault,
	}
	if w.BaseExperience != nil {
		p.BaseExperience = *w.BaseExperience
	}
	if w.Sprites.FrontDefault != nil {
		p.Sprites.FrontDefault = *w.Sprites.FrontDefault
	}
	if len(w.Stats) > 0 {
		p.Stats = make([]pokemon.StatEntry, len(w.Stats))
		for i, s := range w.Stats {
			p.Stats[i] = pokemon.StatEntry{
				BaseStat: s.BaseStat,
				Effort:   s.Effort,
				Stat:     pokemon.NamedResource(s.Stat),
			}
		}
	}
	return p, nil
}

// DecodeSpecies maps one /pokemon-species/{id} payload.
func DecodeSpecies(data []byte) (pokemon.Species, error) {
	var w speciesWire
	if err := json.Unmarshal(data, &w); err != nil {
		return pokemon.Species{}, err
	}
	if w.ID == nil {
		return pokemon.Species{}, errMissingID
	}
	s := pokemon.Species{ID: *w.ID}
	for _, n := range w.Names {
		s.Names = append(s.Names, pokemon.LocalizedName{
			Name:     n.Name,
			Language: pokemon.NamedResource(n.Language),
		})
	}
	for _, e := range w.FlavorTextEntries {
		s.FlavorTextEntries = append(s.FlavorTextEntries, pokemon.FlavorTextEntry{
			FlavorText: e.FlavorText,
			Language:   pokemon.NamedResource(e.Language),
		})
	}
	return s, nil
}

func unexpectedID(want, got int) error {
	return fmt.Errorf("requested id %d, payload has id %d", want, got)
}
