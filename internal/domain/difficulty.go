package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Difficulty is a named density band: generated puzzles fill a fraction
// of cells drawn from [Min, Max].
type Difficulty struct {
	Key string  `json:"key" yaml:"key"`
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DailyKey is the fixed band used for date-seeded puzzles.
const DailyKey = "daily"

// NormalizeKey lowercases a difficulty key and collapses whitespace
// runs to single underscores.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// DifficultyTable resolves difficulty keys to density bands. Built once
// at startup, read-only afterward.
type DifficultyTable struct {
	byKey map[string]Difficulty
}

// DefaultTable returns the built-in difficulty bands.
func DefaultTable() *DifficultyTable {
	t := &DifficultyTable{byKey: map[string]Difficulty{}}
	for _, d := range []Difficulty{
		{Key: "easy", Min: 0.66, Max: 0.74},
		{Key: "medium", Min: 0.58, Max: 0.66},
		{Key: "hard", Min: 0.50, Max: 0.58},
		{Key: "expert", Min: 0.44, Max: 0.50},
		{Key: "master", Min: 0.38, Max: 0.44},
		{Key: DailyKey, Min: 0.53, Max: 0.58},
	} {
		t.byKey[d.Key] = d
	}
	return t
}

// Add inserts or replaces a band. The key is normalized.
func (t *DifficultyTable) Add(d Difficulty) error {
	key := NormalizeKey(d.Key)
	if key == "" {
		return fmt.Errorf("difficulty key is empty")
	}
	if d.Min < 0 || d.Max > 1 || d.Min > d.Max {
		return fmt.Errorf("difficulty %q: bad density band [%v, %v]", key, d.Min, d.Max)
	}
	d.Key = key
	t.byKey[key] = d
	return nil
}

// Lookup resolves a key, normalizing case and whitespace.
func (t *DifficultyTable) Lookup(key string) (Difficulty, bool) {
	d, ok := t.byKey[NormalizeKey(key)]
	return d, ok
}

// Keys returns all known keys, sorted.
func (t *DifficultyTable) Keys() []string {
	out := make([]string, 0, len(t.byKey))
	for k := range t.byKey {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
