package validator

import (
	"time"

	"nonogrid/internal/domain"
	"nonogrid/internal/ports"
)

// Replay checks a submitted solve by regenerating the puzzle's source
// grid from its id and replaying the client's move history against it.
// The reason string is for server-side logging; callers decide how much
// of it to expose.
type Replay struct {
	Gen   ports.Generator
	Table *domain.DifficultyTable

	// MinSolveTime rejects histories whose first-to-last move span is
	// implausibly short. Zero disables the check.
	MinSolveTime time.Duration
}

func New(gen ports.Generator, table *domain.DifficultyTable) *Replay {
	return &Replay{Gen: gen, Table: table}
}

func (v *Replay) Validate(id domain.PuzzleID, moves []domain.Move) (bool, string) {
	if len(moves) == 0 {
		return false, "empty move history"
	}
	band, ok := v.Table.Lookup(id.Difficulty)
	if !ok {
		return false, "unknown difficulty"
	}
	if !domain.ValidSize(id.Size) {
		return false, "size out of bounds"
	}

	grid := v.Gen.Synthesize(id.Seed, id.Size, band)

	// Last write wins per cell, same as a player toggling marks.
	b := domain.NewBoard(id.Size)
	for _, mv := range moves {
		if mv.R < 0 || mv.R >= id.Size || mv.C < 0 || mv.C >= id.Size {
			return false, "move out of bounds"
		}
		if !mv.NewState.Valid() {
			return false, "invalid cell state"
		}
		b.Set(mv.R, mv.C, mv.NewState)
	}

	if !b.MatchesGrid(grid) {
		return false, "grid mismatch"
	}

	if v.MinSolveTime > 0 {
		elapsed := time.Duration(moves[len(moves)-1].Time-moves[0].Time) * time.Millisecond
		if elapsed < v.MinSolveTime {
			return false, "implausible solve time"
		}
	}
	return true, ""
}
