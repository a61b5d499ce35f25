package quiz

import (
	"reflect"
	"sync"
	"testing"
)

func TestPermIsPermutation(t *testing.T) {
	s := NewSeededShuffler(42)
	for _, n := range []int{0, 1, 2, 5, 20} {
		p := s.Perm(n)
		if len(p) != n {
			t.Fatalf("Perm(%d) has length %d", n, len(p))
		}
		seen := make([]bool, n)
		for _, v := range p {
			if v < 0 || v >= n || seen[v] {
				t.Fatalf("Perm(%d) = %v is not a permutation", n, p)
			}
			seen[v] = true
		}
	}
}

func TestSeededShufflerDeterministic(t *testing.T) {
	a := NewSeededShuffler(7).Perm(10)
	b := NewSeededShuffler(7).Perm(10)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestShuffleDoesNotTouchOutOfRange(t *testing.T) {
	s := NewSeededShuffler(1)
	max := -1
	s.Shuffle(4, func(i, j int) {
		if i > max {
			max = i
		}
		if j > max {
			max = j
		}
		if i < 0 || j < 0 || i >= 4 || j >= 4 {
			t.Fatalf("swap(%d, %d) out of range", i, j)
		}
	})
	if max != 3 {
		t.Errorf("highest swapped index = %d, want 3", max)
	}
}

// TestShuffleConcurrent hammers one shared shuffler from many goroutines.
// One shuffler is shared by every request handler, so concurrent use must
// not corrupt the generator state; run with -race.
func TestShuffleConcurrent(t *testing.T) {
	s := NewSeededShuffler(5)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				p := s.Perm(6)
				seen := make([]bool, 6)
				for _, v := range p {
					if v < 0 || v >= 6 || seen[v] {
						t.Errorf("concurrent Perm produced %v", p)
						return
					}
					seen[v] = true
				}
			}
		}()
	}
	wg.Wait()
}

// TestShuffleUniform spot-checks that every element lands in every position.
// With 3 elements there are 6 permutations; over 6000 trials each should
// appear roughly 1000 times. A 3x tolerance keeps the test stable while still
// catching a biased swap bound.
func TestShuffleUniform(t *testing.T) {
	s := NewSeededShuffler(99)
	const trials = 6000
	counts := make(map[[3]int]int)
	for i := 0; i < trials; i++ {
		var p [3]int
		copy(p[:], s.Perm(3))
		counts[p]++
	}
	if len(counts) != 6 {
		t.Fatalf("saw %d distinct permutations, want 6", len(counts))
	}
	for p, n := range counts {
		if n < trials/6/3 || n > trials/6*3 {
			t.Errorf("permutation %v appeared %d times, want about %d", p, n, trials/6)
		}
	}
}
