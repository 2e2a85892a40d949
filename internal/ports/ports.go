package ports

import (
	"context"
	"time"

	"nonogrid/internal/domain"
)

// Stats captures the work one propagation run performed.
type Stats struct {
	Passes     int
	LineSolves int
	Duration   time.Duration
}

// Generator derives the occupancy grid for a puzzle identity. The same
// (seed, size, band) triple must yield a bit-identical grid on every
// host, forever.
type Generator interface {
	Synthesize(seed domain.Seed, size int, band domain.Difficulty) domain.Grid
}

// Solver drives line constraint propagation over a working board.
type Solver interface {
	Run(b *domain.Board, clues domain.Clues) (solved bool, st Stats)
}

// Validator judges a submitted move history against the puzzle it
// claims to solve. Rejections are values, never errors.
type Validator interface {
	Validate(id domain.PuzzleID, moves []domain.Move) (ok bool, reason string)
}

// Hinter returns the next cell some line forces, if any.
type Hinter interface {
	Hint(b *domain.Board, clues domain.Clues) (domain.Hint, bool)
}

// PoolStore persists curated seed pools.
type PoolStore interface {
	SavePool(ctx context.Context, p domain.SeedPool) error
	LoadPool(ctx context.Context, size int, difficulty string) (domain.SeedPool, error)
}

// RecordStore persists accepted submissions per puzzle.
type RecordStore interface {
	SaveRecord(ctx context.Context, id domain.PuzzleID, rec domain.Record) error
	LoadRecords(ctx context.Context, id domain.PuzzleID) ([]domain.Record, error)
}

// Publisher fans accepted submissions out to live listeners.
type Publisher interface {
	Publish(ev domain.LiveEvent)
}
