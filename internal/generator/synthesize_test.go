package generator

import (
	"math"
	"testing"

	"nonogrid/internal/domain"
	"nonogrid/internal/rng"
)

func gridRows(g domain.Grid) []string {
	out := make([]string, g.Size)
	for r := 0; r < g.Size; r++ {
		row := make([]byte, g.Size)
		for c := 0; c < g.Size; c++ {
			row[c] = '0' + g.At(r, c)
		}
		out[r] = string(row)
	}
	return out
}

// The canonical protocol example: seed 42, size 10, band [0.53, 0.58].
// The expected rows are fixed for all time; a mismatch means the
// generation protocol drifted.
func TestSynthesizeSeed42(t *testing.T) {
	g := New().Synthesize(42, 10, domain.Difficulty{Key: "daily", Min: 0.53, Max: 0.58})

	want := []string{
		"1001110011",
		"0011100110",
		"1011110111",
		"0101011101",
		"0110011111",
		"0000101011",
		"1110010010",
		"1101000101",
		"0101100001",
		"1110100110",
	}
	got := gridRows(g)
	for r := range want {
		if got[r] != want[r] {
			t.Fatalf("row %d drifted:\ngot  %v\nwant %v", r, got, want)
		}
	}
	if n := g.FilledCount(); n != 56 {
		t.Fatalf("filled = %d, want 56", n)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	band := domain.Difficulty{Key: "medium", Min: 0.58, Max: 0.66}
	s := New()
	a := s.Synthesize(1234, 15, band)
	b := s.Synthesize(1234, 15, band)
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("same seed diverged at cell %d", i)
		}
	}
	c := s.Synthesize(1235, 15, band)
	same := true
	for i := range a.Cells {
		if a.Cells[i] != c.Cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("adjacent seeds produced identical grids")
	}
}

// Filled count must equal floor(size² × density) with density re-derived
// from the seed's first draw.
func TestSynthesizeDensityConformance(t *testing.T) {
	bands := []domain.Difficulty{
		{Key: "easy", Min: 0.66, Max: 0.74},
		{Key: "hard", Min: 0.50, Max: 0.58},
		{Key: "master", Min: 0.38, Max: 0.44},
	}
	s := New()
	for _, band := range bands {
		for seed := domain.Seed(1); seed <= 20; seed++ {
			for _, size := range []int{5, 10, 13} {
				density := band.Min + rng.New(int32(seed)).Next()*(band.Max-band.Min)
				want := int(math.Floor(float64(size*size) * density))
				g := s.Synthesize(seed, size, band)
				if got := g.FilledCount(); got != want {
					t.Fatalf("%s seed=%d size=%d: filled %d, want %d", band.Key, seed, size, got, want)
				}
			}
		}
	}
}

func TestSynthesizeDegenerate(t *testing.T) {
	s := New()
	t.Run("1x1 rounds to one filled cell", func(t *testing.T) {
		g := s.Synthesize(5, 1, domain.Difficulty{Min: 0.53, Max: 0.58})
		if g.FilledCount() != 1 {
			t.Fatalf("want forced center fill, got %v", g.Cells)
		}
	})
	t.Run("zero density stays empty", func(t *testing.T) {
		g := s.Synthesize(5, 4, domain.Difficulty{Min: 0, Max: 0})
		if g.FilledCount() != 0 {
			t.Fatalf("want empty grid, got %v", g.Cells)
		}
	})
	t.Run("full density stays full", func(t *testing.T) {
		g := s.Synthesize(5, 4, domain.Difficulty{Min: 1, Max: 1})
		if g.FilledCount() != 16 {
			t.Fatalf("want full grid, got %v", g.Cells)
		}
	})
}
