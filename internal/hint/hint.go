package hint

import (
	"nonogrid/internal/domain"
	"nonogrid/internal/solver"
)

// LineHinter suggests the first cell a single line-solver sweep can
// force from the board's current marks. Rows are scanned before
// columns, both in index order, so the suggestion is stable for a
// given board.
type LineHinter struct {
	Lines *solver.LineSolver
}

func New(lines *solver.LineSolver) *LineHinter { return &LineHinter{Lines: lines} }

func (h *LineHinter) Hint(b *domain.Board, clues domain.Clues) (domain.Hint, bool) {
	work := make([]domain.CellMark, b.Size)
	for r := 0; r < b.Size; r++ {
		copy(work, b.Row(r))
		if changed, ok := h.Lines.Solve(work, clues.Rows[r]); ok && changed {
			for c := 0; c < b.Size; c++ {
				if b.At(r, c) == domain.MarkBlank && work[c] != domain.MarkBlank {
					return domain.Hint{R: r, C: c, State: work[c]}, true
				}
			}
		}
	}
	for c := 0; c < b.Size; c++ {
		work = b.Col(c, work)
		if changed, ok := h.Lines.Solve(work, clues.Cols[c]); ok && changed {
			for r := 0; r < b.Size; r++ {
				if b.At(r, c) == domain.MarkBlank && work[r] != domain.MarkBlank {
					return domain.Hint{R: r, C: c, State: work[r]}, true
				}
			}
		}
	}
	return domain.Hint{}, false
}
