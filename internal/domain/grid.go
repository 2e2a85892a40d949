package domain

// CellMark is the tri-state value of one cell on a working board.
type CellMark uint8

const (
	MarkBlank   CellMark = 0 // undecided
	MarkFilled  CellMark = 1
	MarkCrossed CellMark = 2 // decided empty
)

// Valid reports whether m is one of the three legal cell states.
func (m CellMark) Valid() bool { return m <= MarkCrossed }

// Grid is a square binary occupancy matrix, the ground truth of one puzzle.
// Cells are row-major; 1 is filled. Immutable once synthesized.
type Grid struct {
	Size  int
	Cells []uint8
}

// NewGrid returns an all-empty size×size grid.
func NewGrid(size int) Grid {
	return Grid{Size: size, Cells: make([]uint8, size*size)}
}

func (g Grid) At(r, c int) uint8 { return g.Cells[r*g.Size+c] }

func (g Grid) Set(r, c int, v uint8) { g.Cells[r*g.Size+c] = v }

// FilledCount returns the number of filled cells.
func (g Grid) FilledCount() int {
	n := 0
	for _, v := range g.Cells {
		if v == 1 {
			n++
		}
	}
	return n
}

// RowSlices returns the grid as per-row slices sharing the backing array.
func (g Grid) RowSlices() [][]uint8 {
	out := make([][]uint8, g.Size)
	for r := 0; r < g.Size; r++ {
		out[r] = g.Cells[r*g.Size : (r+1)*g.Size]
	}
	return out
}

// Board is the tri-state working grid mutated during solving or replay.
type Board struct {
	Size  int
	Marks []CellMark
}

// NewBoard returns an all-blank size×size board.
func NewBoard(size int) *Board {
	return &Board{Size: size, Marks: make([]CellMark, size*size)}
}

func (b *Board) At(r, c int) CellMark { return b.Marks[r*b.Size+c] }

func (b *Board) Set(r, c int, m CellMark) { b.Marks[r*b.Size+c] = m }

// Row returns row r as a slice aliasing the board's storage.
func (b *Board) Row(r int) []CellMark {
	return b.Marks[r*b.Size : (r+1)*b.Size]
}

// Col copies column c into dst, allocating when dst is too short.
func (b *Board) Col(c int, dst []CellMark) []CellMark {
	if len(dst) < b.Size {
		dst = make([]CellMark, b.Size)
	}
	dst = dst[:b.Size]
	for r := 0; r < b.Size; r++ {
		dst[r] = b.Marks[r*b.Size+c]
	}
	return dst
}

// SetCol writes line back into column c.
func (b *Board) SetCol(c int, line []CellMark) {
	for r := 0; r < b.Size; r++ {
		b.Marks[r*b.Size+c] = line[r]
	}
}

// BlankCount returns the number of undecided cells.
func (b *Board) BlankCount() int {
	n := 0
	for _, m := range b.Marks {
		if m == MarkBlank {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{Size: b.Size, Marks: make([]CellMark, len(b.Marks))}
	copy(out.Marks, b.Marks)
	return out
}

// MatchesGrid reports whether the board's filled cells are exactly the
// grid's filled cells. Blank and crossed both count as not filled.
func (b *Board) MatchesGrid(g Grid) bool {
	if b.Size != g.Size {
		return false
	}
	for i := range g.Cells {
		if (g.Cells[i] == 1) != (b.Marks[i] == MarkFilled) {
			return false
		}
	}
	return true
}

// Move is one player edit in a submitted history. Times are unix
// milliseconds as reported by the client.
type Move struct {
	R        int      `json:"r"`
	C        int      `json:"c"`
	NewState CellMark `json:"newState"`
	Time     int64    `json:"time"`
}
