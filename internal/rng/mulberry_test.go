package rng

import "testing"

// Reference values computed independently from the Mulberry32 definition.
// These must never change: every client of the generation protocol
// reproduces this exact stream.
func TestNextKnownStreams(t *testing.T) {
	cases := []struct {
		seed int32
		want [5]float64
	}{
		{42, [5]float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099, 0.6697340414393693, 0.17481389874592423}},
		{1, [5]float64{0.6270739405881613, 0.002735721180215478, 0.5274470399599522, 0.9810509674716741, 0.9683778982143849}},
		{-1, [5]float64{0.8964226141106337, 0.189478256739676, 0.7156526781618595, 0.9440599093213677, 0.8452364315744489}},
		{20260825, [5]float64{0.8782259691506624, 0.36813079845160246, 0.5384006353560835, 0.04938710457645357, 0.6397754766512662}},
	}
	for _, tc := range cases {
		r := New(tc.seed)
		for i, want := range tc.want {
			got := r.Next()
			if got != want {
				t.Fatalf("seed %d draw %d: got %v, want %v", tc.seed, i, got, want)
			}
		}
	}
}

func TestNextRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		v := r.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestIntRange(t *testing.T) {
	r := New(99)
	want := []int{2, 5, 4, 5, 1, 5, 1, 1, 3, 5}
	for i, w := range want {
		if got := r.IntRange(1, 6); got != w {
			t.Fatalf("draw %d: got %d, want %d", i, got, w)
		}
	}
}

func TestShuffle(t *testing.T) {
	arr := []int{0, 1, 2, 3, 4, 5, 6, 7}
	New(7).Shuffle(len(arr), func(i, j int) { arr[i], arr[j] = arr[j], arr[i] })

	want := []int{4, 6, 1, 2, 3, 5, 7, 0}
	for i := range want {
		if arr[i] != want[i] {
			t.Fatalf("shuffle mismatch at %d: got %v, want %v", i, arr, want)
		}
	}
}

func TestSameSeedSameStream(t *testing.T) {
	a, b := New(123456), New(123456)
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("streams diverged at draw %d: %v vs %v", i, x, y)
		}
	}
}
