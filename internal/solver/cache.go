package solver

import (
	"sync"

	"github.com/zyedidia/generic/cache"

	"nonogrid/internal/domain"
)

// lineMemo is an LRU of enumeration results keyed by the exact
// (clue, line state) bytes. A nil value records an unsatisfiable state.
// Safe for concurrent use; curator workers share one solver per
// configuration but a shared memo must not corrupt the LRU list.
type lineMemo struct {
	mu  sync.Mutex
	lru *cache.Cache[string, []domain.CellMark]
}

func newLineMemo(capacity int) *lineMemo {
	return &lineMemo{lru: cache.New[string, []domain.CellMark](capacity)}
}

func (m *lineMemo) get(key string) ([]domain.CellMark, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Get(key)
}

func (m *lineMemo) put(key string, merged []domain.CellMark) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Put(key, merged)
}

// memoKey packs clue lengths and cell marks into one string key. Run
// lengths fit a byte for any supported size; 0xFF separates the parts.
func memoKey(line []domain.CellMark, clue domain.Clue) string {
	b := make([]byte, 0, len(clue)+len(line)+1)
	for _, n := range clue {
		b = append(b, byte(n))
	}
	b = append(b, 0xFF)
	for _, m := range line {
		b = append(b, byte(m))
	}
	return string(b)
}
