package domain

// Clue is the ordered run lengths of one line. A line with no filled
// cells has the single clue 0.
type Clue []int

// Clues carries the row and column clues of one grid.
type Clues struct {
	Rows []Clue `json:"rows"`
	Cols []Clue `json:"cols"`
}

// LineClues scans one binary line left to right and collects its runs.
func LineClues(line []uint8) Clue {
	out := Clue{}
	run := 0
	for _, v := range line {
		if v == 1 {
			run++
		} else if run > 0 {
			out = append(out, run)
			run = 0
		}
	}
	if run > 0 {
		out = append(out, run)
	}
	if len(out) == 0 {
		out = Clue{0}
	}
	return out
}

// ExtractClues derives all row and column clues from g.
func ExtractClues(g Grid) Clues {
	cl := Clues{
		Rows: make([]Clue, g.Size),
		Cols: make([]Clue, g.Size),
	}
	for r := 0; r < g.Size; r++ {
		cl.Rows[r] = LineClues(g.Cells[r*g.Size : (r+1)*g.Size])
	}
	col := make([]uint8, g.Size)
	for c := 0; c < g.Size; c++ {
		for r := 0; r < g.Size; r++ {
			col[r] = g.Cells[r*g.Size+c]
		}
		cl.Cols[c] = LineClues(col)
	}
	return cl
}
