package quiz

import (
	"math/rand/v2"
	"sync"
)

// Shuffler produces uniform permutations via Fisher-Yates: descending index,
// swap with a uniformly chosen index in [0, i]. Seedable for deterministic
// tests. The mutex makes it safe to share across request handlers: the PCG
// behind rand.Rand is not concurrency-safe on its own.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler returns a shuffler seeded from the process-global generator.
func NewShuffler() *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededShuffler returns a deterministic shuffler.
func NewSeededShuffler(seed uint64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Shuffle permutes n elements in place through swap.
func (s *Shuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := n - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		swap(i, j)
	}
}

// Perm returns a shuffled copy of the indices 0..n-1, for deriving a display
// order without mutating the underlying slice.
func (s *Shuffler) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	s.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}
