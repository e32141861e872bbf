package generator

import "math/rand"

// countingSource counts the values drawn from the underlying source, so the
// exact stream position can be saved and replayed.
type countingSource struct {
	src   rand.Source
	draws int64
}

func (s *countingSource) Int63() int64 {
	s.draws++
	return s.src.Int63()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.draws = 0
}

// RNG is a deterministic random stream with save/restore support.
type RNG struct {
	seed int64
	src  *countingSource
	rand *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	src := &countingSource{src: rand.NewSource(seed)}
	return &RNG{
		seed: seed,
		src:  src,
		rand: rand.New(src),
	}
}

// RestoreRNG creates an RNG and advances it to the given position.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	return rng
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return r.rand.Intn(sides) + 1
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// WeightedSelect returns an index chosen by weighted random selection.
// weights must be non-empty with all positive values.
func (r *RNG) WeightedSelect(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := r.rand.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Seed returns the seed the stream started from.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of source values drawn since creation.
func (r *RNG) Position() int64 {
	return r.src.draws
}
