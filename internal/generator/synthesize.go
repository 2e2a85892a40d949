package generator

import (
	"math"

	"nonogrid/internal/domain"
	"nonogrid/internal/rng"
)

// Synthesize builds the grid for (seed, size, band). The same triple
// yields a bit-identical grid on every host: one density draw, one Bool
// draw per cell in row-major order, then a Fisher-Yates shuffle of all
// cell coordinates on the same stream. The shuffle runs even when the
// noise pass already hit the target, so the stream position stays
// independent of the drawn cells.
func (s *Synthesizer) Synthesize(seed domain.Seed, size int, band domain.Difficulty) domain.Grid {
	r := rng.New(int32(seed))
	density := band.Min + r.Next()*(band.Max-band.Min)
	target := int(math.Floor(float64(size*size) * density))

	g := domain.NewGrid(size)
	filled := 0
	for i := range g.Cells {
		if r.Bool(density) {
			g.Cells[i] = 1
			filled++
		}
	}

	coords := make([]int, size*size)
	for i := range coords {
		coords[i] = i
	}
	r.Shuffle(len(coords), func(i, j int) { coords[i], coords[j] = coords[j], coords[i] })

	diff := filled - target
	for _, idx := range coords {
		if diff == 0 {
			break
		}
		if diff > 0 && g.Cells[idx] == 1 {
			g.Cells[idx] = 0
			diff--
		} else if diff < 0 && g.Cells[idx] == 0 {
			g.Cells[idx] = 1
			diff++
		}
	}

	// Degenerate grids are nudged toward playability: a wanted-but-empty
	// grid gets its center cell, a wanted-but-full grid loses its corner.
	switch g.FilledCount() {
	case 0:
		if density > 0 {
			g.Set(size/2, size/2, 1)
		}
	case size * size:
		if density < 1 {
			g.Set(0, 0, 0)
		}
	}
	return g
}
