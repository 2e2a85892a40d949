package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"nonogrid/internal/domain"
	"nonogrid/internal/generator"
	"nonogrid/internal/metrics"
	"nonogrid/internal/ports"
)

var errNotConfigured = errors.New("usecase dependency not configured")

// Client-caused failures, matched by transports with errors.Is.
var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrBadSize           = errors.New("size out of bounds")
	ErrBadPuzzleID       = errors.New("malformed puzzle id")
	ErrBadBoard          = errors.New("board does not fit puzzle")
)

// Live generation vets at most this many seeds for guess-free
// solvability before giving up and issuing the last one anyway.
const candidateAttempts = 32

type Service struct {
	Gen       ports.Generator
	Solver    ports.Solver
	Validator ports.Validator
	Hinter    ports.Hinter
	Pools     ports.PoolStore
	Records   ports.RecordStore
	Table     *domain.DifficultyTable

	// Live broadcasts accepted submissions when set.
	Live ports.Publisher
	Log  *logrus.Logger

	// DailySize is the grid size of daily puzzles; zero means 15.
	DailySize int
}

func NewService(g ports.Generator, s ports.Solver, v ports.Validator, h ports.Hinter,
	pools ports.PoolStore, records ports.RecordStore, table *domain.DifficultyTable) *Service {
	return &Service{Gen: g, Solver: s, Validator: v, Hinter: h, Pools: pools, Records: records, Table: table}
}

func (u *Service) logger() *logrus.Logger {
	if u.Log != nil {
		return u.Log
	}
	return logrus.StandardLogger()
}

// NewPuzzle issues a puzzle at the requested size and difficulty,
// preferring a curated pool seed. Without a usable pool it generates
// candidates on the spot and vets them; if every candidate needs
// guessing the last one is issued regardless, since serving something
// beats serving an error.
func (u *Service) NewPuzzle(ctx context.Context, size int, difficulty string) (domain.Puzzle, error) {
	if u.Gen == nil || u.Table == nil {
		return domain.Puzzle{}, errNotConfigured
	}
	band, ok := u.Table.Lookup(difficulty)
	if !ok {
		return domain.Puzzle{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
	if !domain.ValidSize(size) {
		return domain.Puzzle{}, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	if u.Pools != nil {
		pool, err := u.Pools.LoadPool(ctx, size, band.Key)
		switch {
		case err != nil:
			u.logger().WithError(err).WithFields(logrus.Fields{
				"size": size, "difficulty": band.Key,
			}).Warn("pool load failed, generating live")
		case pool.Version == generator.Version && len(pool.Seeds) > 0:
			seed := pool.Seeds[rand.Intn(len(pool.Seeds))]
			metrics.PuzzlesIssued.WithLabelValues(band.Key, "pool").Inc()
			return u.buildPuzzle(seed, size, band), nil
		}
	}

	if u.Solver == nil {
		return domain.Puzzle{}, errNotConfigured
	}
	var seed domain.Seed
	for i := 0; i < candidateAttempts; i++ {
		seed = domain.Seed(rand.Uint32())
		start := time.Now()
		grid := u.Gen.Synthesize(seed, size, band)
		b := domain.NewBoard(size)
		solved, st := u.Solver.Run(b, domain.ExtractClues(grid))
		metrics.GenerationSeconds.Observe(time.Since(start).Seconds())
		metrics.SolverPasses.Observe(float64(st.Passes))
		if solved && b.MatchesGrid(grid) {
			metrics.PuzzlesIssued.WithLabelValues(band.Key, "generated").Inc()
			return u.buildPuzzle(seed, size, band), nil
		}
	}
	u.logger().WithFields(logrus.Fields{
		"size": size, "difficulty": band.Key, "attempts": candidateAttempts,
	}).Warn("no guess-free candidate found, issuing unvetted puzzle")
	metrics.PuzzlesIssued.WithLabelValues(band.Key, "generated").Inc()
	return u.buildPuzzle(seed, size, band), nil
}

// DailyPuzzle issues the shared puzzle for now's UTC date. Everyone
// asking on the same date gets the same puzzle; it is not vetted for
// guess-free solvability, that is part of the daily's character.
func (u *Service) DailyPuzzle(ctx context.Context, now time.Time) (domain.Puzzle, error) {
	if u.Gen == nil || u.Table == nil {
		return domain.Puzzle{}, errNotConfigured
	}
	band, ok := u.Table.Lookup(domain.DailyKey)
	if !ok {
		return domain.Puzzle{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, domain.DailyKey)
	}
	size := u.DailySize
	if size == 0 {
		size = 15
	}
	seed := domain.SeedForDate(now.UTC())
	metrics.PuzzlesIssued.WithLabelValues(band.Key, "daily").Inc()
	return u.buildPuzzle(seed, size, band), nil
}

func (u *Service) buildPuzzle(seed domain.Seed, size int, band domain.Difficulty) domain.Puzzle {
	grid := u.Gen.Synthesize(seed, size, band)
	return domain.Puzzle{
		ID:         domain.PuzzleID{Size: size, Difficulty: band.Key, Seed: seed}.String(),
		Size:       size,
		Difficulty: band.Key,
		Clues:      domain.ExtractClues(grid),
	}
}

// Submission is the outcome of a solve submission. Reason explains a
// rejection for the server's own logs; transports must not forward it
// to clients, an attacker probing the validator learns nothing beyond
// accepted or not.
type Submission struct {
	Accepted bool
	Reason   string
	Record   domain.Record
	Solution domain.Grid
}

// Submit verifies a claimed solve and, when it holds up, stores a
// record and broadcasts it. Rejections are values; the error return is
// for infrastructure trouble only.
func (u *Service) Submit(ctx context.Context, rawID, player string, moves []domain.Move) (Submission, error) {
	if u.Validator == nil || u.Records == nil || u.Gen == nil || u.Table == nil {
		return Submission{}, errNotConfigured
	}

	id, err := domain.ParsePuzzleID(rawID)
	if err != nil {
		return u.reject(rawID, "malformed puzzle id"), nil
	}
	if ok, reason := u.Validator.Validate(id, moves); !ok {
		return u.reject(rawID, reason), nil
	}

	band, ok := u.Table.Lookup(id.Difficulty)
	if !ok {
		return u.reject(rawID, "unknown difficulty"), nil
	}

	if player == "" {
		player = "anonymous"
	}
	rec := domain.Record{
		Player:    player,
		ElapsedMs: moves[len(moves)-1].Time - moves[0].Time,
		Moves:     len(moves),
		CreatedAt: time.Now().Unix(),
	}
	if err := u.Records.SaveRecord(ctx, id, rec); err != nil {
		return Submission{}, fmt.Errorf("save record for %s: %w", id, err)
	}

	if u.Live != nil {
		u.Live.Publish(domain.LiveEvent{
			PuzzleID:  id.String(),
			Player:    rec.Player,
			ElapsedMs: rec.ElapsedMs,
			Moves:     rec.Moves,
			CreatedAt: rec.CreatedAt,
		})
	}
	metrics.Submissions.WithLabelValues("accepted", "").Inc()
	u.logger().WithFields(logrus.Fields{
		"puzzle": id.String(), "player": rec.Player, "elapsedMs": rec.ElapsedMs,
	}).Info("submission accepted")

	return Submission{
		Accepted: true,
		Record:   rec,
		Solution: u.Gen.Synthesize(id.Seed, id.Size, band),
	}, nil
}

func (u *Service) reject(rawID, reason string) Submission {
	metrics.Submissions.WithLabelValues("rejected", reason).Inc()
	u.logger().WithFields(logrus.Fields{
		"puzzle": rawID, "reason": reason,
	}).Warn("submission rejected")
	return Submission{Accepted: false, Reason: reason}
}

// PuzzleRecords lists stored records for a puzzle, best time first.
func (u *Service) PuzzleRecords(ctx context.Context, rawID string) ([]domain.Record, error) {
	if u.Records == nil {
		return nil, errNotConfigured
	}
	id, err := domain.ParsePuzzleID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPuzzleID, err)
	}
	return u.Records.LoadRecords(ctx, id)
}

// Hint suggests the next forced cell for a board mid-solve. The marks
// slice is the client's board in row-major order.
func (u *Service) Hint(ctx context.Context, rawID string, marks []domain.CellMark) (domain.Hint, bool, error) {
	if u.Hinter == nil || u.Gen == nil || u.Table == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	id, err := domain.ParsePuzzleID(rawID)
	if err != nil {
		return domain.Hint{}, false, fmt.Errorf("%w: %v", ErrBadPuzzleID, err)
	}
	band, ok := u.Table.Lookup(id.Difficulty)
	if !ok {
		return domain.Hint{}, false, fmt.Errorf("%w: %q", ErrUnknownDifficulty, id.Difficulty)
	}
	if !domain.ValidSize(id.Size) {
		return domain.Hint{}, false, fmt.Errorf("%w: %d", ErrBadSize, id.Size)
	}
	if len(marks) != id.Size*id.Size {
		return domain.Hint{}, false, fmt.Errorf("%w: %d marks for size %d", ErrBadBoard, len(marks), id.Size)
	}
	for _, m := range marks {
		if !m.Valid() {
			return domain.Hint{}, false, fmt.Errorf("%w: bad cell state %d", ErrBadBoard, m)
		}
	}

	grid := u.Gen.Synthesize(id.Seed, id.Size, band)
	b := &domain.Board{Size: id.Size, Marks: marks}
	h, found := u.Hinter.Hint(b, domain.ExtractClues(grid))
	return h, found, nil
}
