// Package query derives category facets and the filtered view of a catalog
// snapshot from the user's filter state. Everything here is a pure function
// of its inputs: no I/O, no shared mutable state, safe for concurrent use.
package query

import (
	"slices"
	"strings"

	"APIDirectory/internal/catalog"
)

// AllCategories is the facet sentinel meaning "no category restriction".
const AllCategories = "All"

// State is the user's current filter selection.
type State struct {
	Category string
	Search   string
}

func DefaultState() State { return State{Category: AllCategories} }

// View is the result of applying a State to a snapshot.
type View struct {
	State   State
	Facets  []string
	Entries []catalog.Entry
	Count   int
	Total   int
}

// Empty reports the "no matches" outcome. It is not an error.
func (v View) Empty() bool { return v.Count == 0 }

// Facets returns "All" followed by the distinct categories of s in byte-wise
// order. Category equality is case-sensitive.
func Facets(s *catalog.Snapshot) []string {
	seen := make(map[string]struct{})
	distinct := make([]string, 0, 16)
	for i := range s.Len() {
		c := s.At(i).Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}
	slices.Sort(distinct)

	return append([]string{AllCategories}, distinct...)
}

// Match reports whether e passes both the category and the search predicate.
func Match(e catalog.Entry, st State) bool {
	return newMatcher(st).match(e)
}

// Filter returns the entries of s that match st, in catalog order. The
// result is never nil. A category that no entry carries yields no entries.
func Filter(s *catalog.Snapshot, st State) []catalog.Entry {
	m := newMatcher(st)
	out := make([]catalog.Entry, 0, s.Len())
	for i := range s.Len() {
		if e := s.At(i); m.match(e) {
			out = append(out, e)
		}
	}
	return out
}

func Run(s *catalog.Snapshot, st State) View {
	entries := Filter(s, st)
	return View{
		State:   st,
		Facets:  Facets(s),
		Entries: entries,
		Count:   len(entries),
		Total:   s.Len(),
	}
}

// matcher holds the lowered search term so it is folded once per run.
type matcher struct {
	category string
	term     string
}

func newMatcher(st State) matcher {
	return matcher{category: st.Category, term: strings.ToLower(st.Search)}
}

func (m matcher) match(e catalog.Entry) bool {
	if m.category != AllCategories && e.Category != m.category {
		return false
	}
	if m.term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), m.term) ||
		strings.Contains(strings.ToLower(e.Description), m.term)
}
