package production

// SearchMemo caches, per state, the most terminal resource that can still be
// added between that state and the horizon.
// One memo belongs to exactly one search; it is not safe for concurrent use.
type SearchMemo struct {
	entries map[ProductionState]int64
	hits    uint64
}

// NewSearchMemo creates an empty memo
func NewSearchMemo() *SearchMemo {
	return &SearchMemo{entries: make(map[ProductionState]int64)}
}

// Lookup returns the cached value for state, counting hits
func (m *SearchMemo) Lookup(state ProductionState) (int64, bool) {
	v, ok := m.entries[state]
	if ok {
		m.hits++
	}
	return v, ok
}

// Store records the value for state
func (m *SearchMemo) Store(state ProductionState, value int64) {
	m.entries[state] = value
}

// Len is the number of distinct states cached
func (m *SearchMemo) Len() int {
	return len(m.entries)
}

// Hits is the number of successful lookups
func (m *SearchMemo) Hits() uint64 {
	return m.hits
}
