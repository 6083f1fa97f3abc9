package list

import (
	"strconv"
	"strings"

	"github.com/atomicstack/pokedex/internal/feature/item"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Visible returns the items matching Filter, in collection order.
func (s State) Visible() []item.State {
	return FilterItems(s.Items, s.Filter)
}

// FilterItems fuzzy-matches query against item names. A query of digits also
// matches dex numbers by prefix. An empty query returns every item.
func FilterItems(items []item.State, query string) []item.State {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return items
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Pokemon.Name
	}
	matches := make(map[int]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, names) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	if _, err := strconv.Atoi(trimmed); err == nil {
		for i, it := range items {
			if strings.HasPrefix(strconv.Itoa(it.ID), strings.TrimLeft(trimmed, "0")) {
				matches[i] = struct{}{}
			}
		}
	}
	filtered := make([]item.State, 0, len(matches))
	for i, it := range items {
		if _, ok := matches[i]; ok {
			filtered = append(filtered, it)
		}
	}
	return filtered
}
