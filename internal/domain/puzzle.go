package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Size bounds accepted from clients. Generation itself works for any
// positive size; these cap what the service will compute on demand.
const (
	MinSize = 2
	MaxSize = 50
)

// ValidSize reports whether n is a size the service accepts.
func ValidSize(n int) bool { return n >= MinSize && n <= MaxSize }

// PuzzleID names one puzzle. Encoded as "<size>:<difficultyKey>:<seed>".
type PuzzleID struct {
	Size       int
	Difficulty string // normalized key
	Seed       Seed
}

func (id PuzzleID) String() string {
	return strconv.Itoa(id.Size) + ":" + id.Difficulty + ":" + strconv.FormatInt(int64(id.Seed), 10)
}

// ParsePuzzleID decodes a puzzle identifier, normalizing the difficulty
// key. Keys are restricted to letters, digits and underscores so ids
// stay safe to use in storage paths.
func ParsePuzzleID(s string) (PuzzleID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return PuzzleID{}, fmt.Errorf("puzzle id %q: want 3 colon-separated fields", s)
	}
	size, err := strconv.Atoi(parts[0])
	if err != nil || size <= 0 {
		return PuzzleID{}, fmt.Errorf("puzzle id %q: bad size %q", s, parts[0])
	}
	key := NormalizeKey(parts[1])
	if key == "" || !safeKey(key) {
		return PuzzleID{}, fmt.Errorf("puzzle id %q: bad difficulty %q", s, parts[1])
	}
	seed, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return PuzzleID{}, fmt.Errorf("puzzle id %q: bad seed %q", s, parts[2])
	}
	return PuzzleID{Size: size, Difficulty: key, Seed: Seed(seed)}, nil
}

func safeKey(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Puzzle is what the service hands a client: the identifier and the
// clues. The solution grid never leaves the server with it.
type Puzzle struct {
	ID         string `json:"id"`
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Clues      Clues  `json:"clues"`
}

// Hint points at one cell the clues force, and the state it must take.
type Hint struct {
	R     int      `json:"r"`
	C     int      `json:"c"`
	State CellMark `json:"state"`
}

// SeedPool is a curated list of vetted seeds for one (size, difficulty)
// configuration. Version records the generation protocol the seeds were
// vetted under; pools from older protocols are ignored.
type SeedPool struct {
	Version    int    `json:"version"`
	Size       int    `json:"size"`
	Difficulty string `json:"difficulty"`
	Seeds      []Seed `json:"seeds"`
}

// Record is one accepted submission for a puzzle.
type Record struct {
	Player    string `json:"player"`
	ElapsedMs int64  `json:"elapsedMs"`
	Moves     int    `json:"moves"`
	CreatedAt int64  `json:"createdAt"`
}

// LiveEvent is an accepted submission as broadcast to live listeners.
type LiveEvent struct {
	PuzzleID  string `json:"puzzleId"`
	Player    string `json:"player"`
	ElapsedMs int64  `json:"elapsedMs"`
	Moves     int    `json:"moves"`
	CreatedAt int64  `json:"createdAt"`
}
