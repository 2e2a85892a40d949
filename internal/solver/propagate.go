package solver

import (
	"time"

	"nonogrid/internal/domain"
	"nonogrid/internal/ports"
)

// Propagator sweeps the LineSolver across all rows, then all columns,
// repeating full passes until one changes nothing. It never guesses: a
// puzzle counts as solvable exactly when the terminal board has no
// blank cell left.
type Propagator struct {
	Lines *LineSolver
}

func NewPropagator(lines *LineSolver) *Propagator { return &Propagator{Lines: lines} }

// Run mutates b toward the fixpoint and reports whether every cell was
// resolved. Cells only ever move from blank to a decided state. A
// contradictory line stops the sweep early with solved=false; generated
// puzzles never trigger that path.
func (p *Propagator) Run(b *domain.Board, clues domain.Clues) (bool, ports.Stats) {
	start := time.Now()
	var st ports.Stats
	col := make([]domain.CellMark, b.Size)
	for {
		st.Passes++
		changed := false
		for r := 0; r < b.Size; r++ {
			ch, ok := p.Lines.Solve(b.Row(r), clues.Rows[r])
			st.LineSolves++
			if !ok {
				st.Duration = time.Since(start)
				return false, st
			}
			if ch {
				changed = true
			}
		}
		for c := 0; c < b.Size; c++ {
			col = b.Col(c, col)
			ch, ok := p.Lines.Solve(col, clues.Cols[c])
			st.LineSolves++
			if !ok {
				st.Duration = time.Since(start)
				return false, st
			}
			if ch {
				b.SetCol(c, col)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	st.Duration = time.Since(start)
	return b.BlankCount() == 0, st
}
