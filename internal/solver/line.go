package solver

import (
	"nonogrid/internal/domain"
)

// LineSolver resolves single lines: it enumerates every placement of a
// clue's runs consistent with the already-known cells and intersects
// the results, forcing cells that agree across all placements.
type LineSolver struct {
	memo *lineMemo
}

// NewLineSolver returns a solver memoizing up to capacity line results.
// Capacity 0 disables memoization. Pool curation revisits the same
// (clue, state) pairs constantly and benefits the most from the memo.
func NewLineSolver(capacity int) *LineSolver {
	ls := &LineSolver{}
	if capacity > 0 {
		ls.memo = newLineMemo(capacity)
	}
	return ls
}

// Solve updates line in place and reports whether any blank cell became
// resolved. ok is false when zero placements fit, meaning the line
// contradicts its clue; the line is then left untouched. That state
// cannot arise from generated puzzles, only from corrupt caller input,
// so it is reported rather than panicking.
func (s *LineSolver) Solve(line []domain.CellMark, clue domain.Clue) (changed, ok bool) {
	var key string
	if s.memo != nil {
		key = memoKey(line, clue)
		if merged, hit := s.memo.get(key); hit {
			return applyMerged(line, merged)
		}
	}
	merged, _ := enumerate(line, clue)
	if s.memo != nil {
		s.memo.put(key, merged)
	}
	return applyMerged(line, merged)
}

// applyMerged copies forced cells into line's blanks. A nil merged
// marks an unsatisfiable state.
func applyMerged(line, merged []domain.CellMark) (changed, ok bool) {
	if merged == nil {
		return false, false
	}
	for i, m := range merged {
		if line[i] == domain.MarkBlank && m != domain.MarkBlank {
			line[i] = m
			changed = true
		}
	}
	return changed, true
}

// enumerate walks every placement of clue into line, left to right with
// at least one gap between runs, pruning starts past the last position
// the remaining runs still fit behind. It returns the per-cell
// intersection of all valid full configurations, or nil when there are
// none.
func enumerate(line []domain.CellMark, clue domain.Clue) ([]domain.CellMark, bool) {
	n := len(line)
	runs := make([]int, 0, len(clue))
	for _, c := range clue {
		if c > 0 {
			runs = append(runs, c)
		}
	}

	// rest[i] is the minimum width runs[i:] still needs, gaps included.
	rest := make([]int, len(runs)+1)
	for i := len(runs) - 1; i >= 0; i-- {
		rest[i] = rest[i+1] + runs[i]
		if i < len(runs)-1 {
			rest[i]++
		}
	}

	cand := make([]domain.CellMark, n)
	var merged []domain.CellMark
	count := 0

	accept := func() {
		count++
		if merged == nil {
			merged = append([]domain.CellMark(nil), cand...)
			return
		}
		for i, m := range merged {
			if m != domain.MarkBlank && m != cand[i] {
				merged[i] = domain.MarkBlank
			}
		}
	}

	var place func(idx, pos int)
	place = func(idx, pos int) {
		if idx == len(runs) {
			// all runs placed; the tail may hold no known-filled cell
			for i := pos; i < n; i++ {
				if line[i] == domain.MarkFilled {
					return
				}
				cand[i] = domain.MarkCrossed
			}
			accept()
			return
		}
		length := runs[idx]
		last := n - rest[idx]
		for p := pos; p <= last; p++ {
			if fits(line, p, length) {
				for i := pos; i < p; i++ {
					cand[i] = domain.MarkCrossed
				}
				for i := p; i < p+length; i++ {
					cand[i] = domain.MarkFilled
				}
				if next := p + length; next < n {
					cand[next] = domain.MarkCrossed
					place(idx+1, next+1)
				} else {
					place(idx+1, next)
				}
			}
			if line[p] == domain.MarkFilled {
				// every later start would leave this cell uncovered
				break
			}
		}
	}
	place(0, 0)

	if count == 0 {
		return nil, false
	}
	return merged, true
}

// fits reports whether a run of the given length may start at p: no
// known-excluded cell under the run and no known-filled cell directly
// after it.
func fits(line []domain.CellMark, p, length int) bool {
	for i := p; i < p+length; i++ {
		if line[i] == domain.MarkCrossed {
			return false
		}
	}
	return p+length >= len(line) || line[p+length] != domain.MarkFilled
}
