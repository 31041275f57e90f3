package query

import (
	"sync"

	"github.com/google/uuid"

	"APIDirectory/internal/catalog"
)

const defaultMemoLimit = 256

type memoKey struct {
	snapshot uuid.UUID
	category string
	search   string
}

// Memo caches views keyed by (snapshot id, category, search). A hit returns
// exactly what Run would compute; callers must treat the returned slices as
// read-only since they are shared between hits.
type Memo struct {
	mu     sync.Mutex
	limit  int
	views  map[memoKey]View
	hits   uint64
	misses uint64
}

func NewMemo(limit int) *Memo {
	if limit <= 0 {
		limit = defaultMemoLimit
	}
	return &Memo{limit: limit, views: make(map[memoKey]View, limit)}
}

func (m *Memo) Run(s *catalog.Snapshot, st State) View {
	if m == nil {
		return Run(s, st)
	}

	key := memoKey{category: st.Category, search: st.Search}
	if s != nil {
		key.snapshot = s.ID
	}

	m.mu.Lock()
	if v, ok := m.views[key]; ok {
		m.hits++
		m.mu.Unlock()
		return v
	}
	m.misses++
	m.mu.Unlock()

	v := Run(s, st)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.views) >= m.limit {
		// Keys from replaced snapshots are never hit again; dropping the
		// whole table is simpler than tracking recency.
		clear(m.views)
	}
	m.views[key] = v
	return v
}

// Stats returns hit and miss counts.
func (m *Memo) Stats() (hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
