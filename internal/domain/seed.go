package domain

import (
	"strconv"
	"time"
)

// Seed parameterizes one puzzle's randomness stream. 32-bit signed, the
// same width every protocol implementation uses.
type Seed int32

// SeedFromString maps an arbitrary identifier to a Seed. Numeric strings
// parse as base-10 and truncate to 32 bits; anything else is hashed by
// folding runes with multiplier 31 into a wrapping int32, so the same
// name always yields the same puzzle.
func SeedFromString(s string) Seed {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Seed(int32(v))
	}
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return Seed(h)
}

// SeedForDate returns the shared daily seed for t's date: YYYYMMDD read
// as a base-10 integer.
func SeedForDate(t time.Time) Seed {
	return Seed(int32(t.Year()*10000 + int(t.Month())*100 + t.Day()))
}
