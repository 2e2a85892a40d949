package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"nonogrid/internal/domain"
)

// Leaderboard files keep only the best runs per puzzle.
const maxRecordsPerPuzzle = 25

// FS keeps pools and records as pretty-printed JSON under a data
// directory:
//
//	<dir>/pools/<difficulty>/<size>.json
//	<dir>/records/<difficulty>/<size>/<seed>.json
//
// Writes land in a temp file first and move into place with a rename,
// so readers never observe a half-written file.
type FS struct {
	dir string
	mu  sync.Mutex // serializes read-modify-write on record files
}

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) poolPath(size int, difficulty string) string {
	return filepath.Join(s.dir, "pools", difficulty, strconv.Itoa(size)+".json")
}

func (s *FS) recordPath(id domain.PuzzleID) string {
	return filepath.Join(s.dir, "records", id.Difficulty, strconv.Itoa(id.Size),
		strconv.FormatInt(int64(id.Seed), 10)+".json")
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FS) SavePool(ctx context.Context, p domain.SeedPool) error {
	if p.Size <= 0 || p.Difficulty == "" {
		return errors.New("pool missing size or difficulty")
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.poolPath(p.Size, p.Difficulty), data)
}

// LoadPool returns an empty pool, not an error, when none has been
// curated yet; callers fall back to live generation.
func (s *FS) LoadPool(ctx context.Context, size int, difficulty string) (domain.SeedPool, error) {
	data, err := os.ReadFile(s.poolPath(size, difficulty))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.SeedPool{Size: size, Difficulty: difficulty}, nil
		}
		return domain.SeedPool{}, err
	}
	var p domain.SeedPool
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.SeedPool{}, fmt.Errorf("decode pool %s/%d: %w", difficulty, size, err)
	}
	return p, nil
}

func (s *FS) SaveRecord(ctx context.Context, id domain.PuzzleID, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.loadRecordsLocked(id)
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].ElapsedMs < recs[j].ElapsedMs })
	if len(recs) > maxRecordsPerPuzzle {
		recs = recs[:maxRecordsPerPuzzle]
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.recordPath(id), data)
}

func (s *FS) LoadRecords(ctx context.Context, id domain.PuzzleID) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRecordsLocked(id)
}

func (s *FS) loadRecordsLocked(id domain.PuzzleID) ([]domain.Record, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var recs []domain.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", id, err)
	}
	return recs, nil
}
