package hint

import (
	"testing"

	"nonogrid/internal/domain"
	"nonogrid/internal/generator"
	"nonogrid/internal/solver"
)

func puzzle5x5(t *testing.T) (domain.Grid, domain.Clues) {
	t.Helper()
	g := generator.New().Synthesize(1, 5, domain.Difficulty{Min: 0.66, Max: 0.74})
	return g, domain.ExtractClues(g)
}

func TestHintFirstForcedCell(t *testing.T) {
	_, clues := puzzle5x5(t)
	h := New(solver.NewLineSolver(0))

	// Row 0's clue [2 1] pins only its second cell on a blank board.
	got, ok := h.Hint(domain.NewBoard(5), clues)
	if !ok {
		t.Fatal("no hint on a blank solvable board")
	}
	want := domain.Hint{R: 0, C: 1, State: domain.MarkFilled}
	if got != want {
		t.Fatalf("hint = %+v, want %+v", got, want)
	}
}

func TestHintAdvances(t *testing.T) {
	_, clues := puzzle5x5(t)
	h := New(solver.NewLineSolver(0))
	b := domain.NewBoard(5)

	first, ok := h.Hint(b, clues)
	if !ok {
		t.Fatal("no first hint")
	}
	b.Set(first.R, first.C, first.State)

	// With (0,1) placed, row 2's clue [1 3] is the next line with a
	// forced cell; it fits its width exactly.
	second, ok := h.Hint(b, clues)
	if !ok {
		t.Fatal("no second hint")
	}
	want := domain.Hint{R: 2, C: 0, State: domain.MarkFilled}
	if second != want {
		t.Fatalf("second hint = %+v, want %+v", second, want)
	}
}

func TestHintNoneOnSolvedBoard(t *testing.T) {
	g, clues := puzzle5x5(t)
	h := New(solver.NewLineSolver(0))

	b := domain.NewBoard(5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if g.At(r, c) == 1 {
				b.Set(r, c, domain.MarkFilled)
			} else {
				b.Set(r, c, domain.MarkCrossed)
			}
		}
	}
	if hint, ok := h.Hint(b, clues); ok {
		t.Fatalf("hint %+v on a finished board", hint)
	}
}

func TestHintNoneWhenBoardContradictsClues(t *testing.T) {
	clues := domain.Clues{
		Rows: []domain.Clue{{0}, {0}},
		Cols: []domain.Clue{{0}, {0}},
	}
	b := domain.NewBoard(2)
	b.Set(0, 0, domain.MarkFilled)
	b.Set(0, 1, domain.MarkCrossed)
	b.Set(1, 0, domain.MarkCrossed)
	b.Set(1, 1, domain.MarkCrossed)

	h := New(solver.NewLineSolver(0))
	if hint, ok := h.Hint(b, clues); ok {
		t.Fatalf("hint %+v from a contradicted board", hint)
	}
}
