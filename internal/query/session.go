package query

import "APIDirectory/internal/catalog"

// Session is one user's browsing state over one snapshot. Every mutation
// recomputes the view before returning. A Session belongs to a single
// goroutine (the UI loop); the engine underneath is what is shared.
type Session struct {
	snap  *catalog.Snapshot
	memo  *Memo
	state State
	view  View
}

// NewSession starts a session with the default state. memo may be nil.
func NewSession(snap *catalog.Snapshot, memo *Memo) *Session {
	s := &Session{snap: snap, memo: memo, state: DefaultState()}
	s.recompute()
	return s
}

func (s *Session) Snapshot() *catalog.Snapshot { return s.snap }
func (s *Session) State() State                { return s.state }
func (s *Session) View() View                  { return s.view }

func (s *Session) SetCategory(c string) View {
	s.state.Category = c
	return s.recompute()
}

func (s *Session) SetSearch(term string) View {
	s.state.Search = term
	return s.recompute()
}

// CycleCategory moves the selection delta places through the facet list,
// wrapping at both ends. A stale selection restarts from "All".
func (s *Session) CycleCategory(delta int) View {
	facets := s.view.Facets
	i := 0
	for j, f := range facets {
		if f == s.state.Category {
			i = j
			break
		}
	}
	n := len(facets)
	s.state.Category = facets[((i+delta)%n+n)%n]
	return s.recompute()
}

func (s *Session) Reset() View {
	s.state = DefaultState()
	return s.recompute()
}

// Replace swaps in a reloaded snapshot and keeps the current state, even if
// the selected category no longer exists.
func (s *Session) Replace(snap *catalog.Snapshot) View {
	s.snap = snap
	return s.recompute()
}

func (s *Session) recompute() View {
	s.view = s.memo.Run(s.snap, s.state)
	return s.view
}
