package keywords

import (
	"sort"
	"strings"
)

// Set is an unordered collection of unique keywords.
type Set map[string]struct{}

// NewSet builds a set from items, skipping empty strings.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

func (s Set) Add(item string) {
	if item == "" {
		return
	}
	s[item] = struct{}{}
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the keywords in lexicographic order.
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Difference returns the keywords of s that are not in other, compared case-insensitively.
func (s Set) Difference(other Set) Set {
	lowered := make(Set, len(other))
	for item := range other {
		lowered.Add(strings.ToLower(item))
	}

	diff := make(Set)
	for item := range s {
		lower := strings.ToLower(item)
		if !lowered.Has(lower) {
			diff.Add(lower)
		}
	}
	return diff
}
