package airquality

import "sync"

// sequenceSource replays offsets, clamped to [0, n), and repeats the last one.
type sequenceSource struct {
	mu      sync.Mutex
	offsets []int
	calls   int
}

func (s *sequenceSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := 0
	if len(s.offsets) > 0 {
		i := s.calls
		if i >= len(s.offsets) {
			i = len(s.offsets) - 1
		}
		v = s.offsets[i]
	}
	s.calls++

	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// lowSource always draws the lower bound, highSource the upper one.
type lowSource struct{}

func (lowSource) IntN(int) int { return 0 }

type highSource struct{}

func (highSource) IntN(n int) int { return n - 1 }
