package rng

// Mulberry is a Mulberry32 pseudo-random stream. The draw sequence for a
// given seed is part of the puzzle generation protocol: clients, the
// validator, and the pool curator must all observe the identical stream,
// so the mixing steps below are frozen. See generator.Version.
type Mulberry struct {
	state uint32
}

// New seeds a stream from a 32-bit signed seed. Negative seeds map onto
// their two's-complement bit pattern.
func New(seed int32) *Mulberry {
	return &Mulberry{state: uint32(seed)}
}

// Next advances the stream and returns a value in [0, 1).
func (r *Mulberry) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Bool draws once and reports whether the draw fell below p.
func (r *Mulberry) Bool(p float64) bool {
	return r.Next() < p
}

// IntRange draws once and maps the result to [min, max], both inclusive.
func (r *Mulberry) IntRange(min, max int) int {
	return int(r.Next()*float64(max-min+1)) + min
}

// Shuffle runs a Fisher-Yates pass over n elements, high index first,
// consuming exactly n-1 draws.
func (r *Mulberry) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntRange(0, i)
		swap(i, j)
	}
}
