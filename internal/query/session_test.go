package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"APIDirectory/internal/catalog"
)

func TestMemo_HitReturnsSameView(t *testing.T) {
	snap := mustSnapshot(t, catalog.DemoEntries())
	m := NewMemo(0)
	st := State{Category: "Animals", Search: "dog"}

	first := m.Run(snap, st)
	second := m.Run(snap, st)

	assert.Equal(t, Run(snap, st), first)
	assert.Equal(t, first, second)

	hits, misses := m.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestMemo_KeyedBySnapshot(t *testing.T) {
	m := NewMemo(4)
	st := DefaultState()

	a := mustSnapshot(t, catalog.DemoEntries())
	b := mustSnapshot(t, catalog.DemoEntries()[:2])

	assert.Equal(t, 8, m.Run(a, st).Count)
	assert.Equal(t, 2, m.Run(b, st).Count)

	_, misses := m.Stats()
	assert.EqualValues(t, 2, misses)
}

func TestMemo_BoundedAndNilSafe(t *testing.T) {
	snap := mustSnapshot(t, catalog.DemoEntries())
	m := NewMemo(2)

	for _, term := range []string{"a", "b", "c", "d"} {
		m.Run(snap, State{Category: AllCategories, Search: term})
	}
	assert.LessOrEqual(t, len(m.views), 2)

	var none *Memo
	assert.Equal(t, Run(snap, DefaultState()), none.Run(snap, DefaultState()))
}

func TestSession_Defaults(t *testing.T) {
	s := NewSession(mustSnapshot(t, catalog.DemoEntries()), nil)

	assert.Equal(t, DefaultState(), s.State())
	assert.Equal(t, 8, s.View().Count)
	assert.Equal(t, []string{"All", "Animals", "Development", "Music", "Science", "Weather"}, s.View().Facets)
}

func TestSession_Mutations(t *testing.T) {
	s := NewSession(mustSnapshot(t, catalog.DemoEntries()), NewMemo(0))

	v := s.SetCategory("Weather")
	assert.Equal(t, []string{"3", "4"}, ids(v.Entries))

	v = s.SetSearch("FORECAST")
	assert.Equal(t, []string{"3", "4"}, ids(v.Entries))

	v = s.SetSearch("history")
	assert.Equal(t, []string{"4"}, ids(v.Entries))
	assert.Equal(t, v, s.View())

	v = s.SetSearch("nothing like this")
	assert.True(t, v.Empty())

	v = s.Reset()
	assert.Equal(t, DefaultState(), s.State())
	assert.Equal(t, 8, v.Count)
}

func TestSession_CycleCategoryWraps(t *testing.T) {
	s := NewSession(mustSnapshot(t, catalog.DemoEntries()), nil)

	s.CycleCategory(1)
	assert.Equal(t, "Animals", s.State().Category)

	s.CycleCategory(-2)
	assert.Equal(t, "Weather", s.State().Category)

	s.CycleCategory(1)
	assert.Equal(t, AllCategories, s.State().Category)

	s.SetCategory("Gone")
	s.CycleCategory(1)
	assert.Equal(t, "Animals", s.State().Category)
}

func TestSession_ReplaceKeepsState(t *testing.T) {
	s := NewSession(mustSnapshot(t, catalog.DemoEntries()), NewMemo(0))
	s.SetCategory("Music")
	s.SetSearch("spotify")
	require.Equal(t, 1, s.View().Count)

	reloaded := mustSnapshot(t, catalog.DemoEntries()[:4])
	v := s.Replace(reloaded)

	assert.Same(t, reloaded, s.Snapshot())
	assert.Equal(t, State{Category: "Music", Search: "spotify"}, v.State)
	assert.True(t, v.Empty(), "selection missing from the new catalog matches nothing")
	assert.NotContains(t, v.Facets, "Music")
}
