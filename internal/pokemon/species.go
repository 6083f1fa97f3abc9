package pokemon

import "strings"

// DefaultLanguage is used when a caller does not ask for a specific one.
const DefaultLanguage = "en"

// Species carries localized names and flavor text for an entity.
type Species struct {
	ID                int
	Names             []LocalizedName
	FlavorTextEntries []FlavorTextEntry
}

// LocalizedName is a name in one language.
type LocalizedName struct {
	Name     string
	Language NamedResource
}

// FlavorTextEntry is a dex description in one language.
type FlavorTextEntry struct {
	FlavorText string
	Language   NamedResource
}

// LocalizedName returns the species name in lang.
func (s Species) LocalizedName(lang string) (string, bool) {
	lang = normaliseLanguage(lang)
	for _, n := range s.Names {
		if n.Language.Name == lang {
			return n.Name, true
		}
	}
	return "", false
}

// FlavorText returns the first flavor text in lang with whitespace collapsed;
// the API embeds form feeds and hard line breaks.
func (s Species) FlavorText(lang string) (string, bool) {
	lang = normaliseLanguage(lang)
	for _, e := range s.FlavorTextEntries {
		if e.Language.Name == lang {
			return strings.Join(strings.Fields(e.FlavorText), " "), true
		}
	}
	return "", false
}

func normaliseLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// MockSpecies builds a deterministic species for previews and tests.
func MockSpecies(id int) Species {
	ja := NamedResource{Name: "ja", URL: "https://pokeapi.co/api/v2/language/11/"}
	en := NamedResource{Name: "en", URL: "https://pokeapi.co/api/v2/language/9/"}
	return Species{
		ID: id,
		Names: []LocalizedName{
			{Name: "フシギダネ", Language: ja},
			{Name: "Bulbasaur", Language: en},
		},
		FlavorTextEntries: []FlavorTextEntry{
			{FlavorText: "生まれたときから　背中に 不思議な　タネが　植えてあって 体と　ともに　育つという。", Language: ja},
			{FlavorText: "A strange seed was\nplanted on its\fback at birth.", Language: en},
		},
	}
}
