package airquality

import "math/rand/v2"

// IntSource yields integers in [0, n).
type IntSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Generator produces placeholder values. All ranges are inclusive integers.
type Generator struct {
	rnd IntSource
}

// NewGenerator uses the process-wide math/rand source when rnd is nil.
func NewGenerator(rnd IntSource) *Generator {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Generator{rnd: rnd}
}

// PM25 stands in for a live reading, in [30, 100].
func (g *Generator) PM25() float64 {
	return float64(g.between(30, 100))
}

// DailyPM25 is a daily average for the history placeholder, in [30, 120].
func (g *Generator) DailyPM25() float64 {
	return float64(g.between(30, 120))
}

// DailyRain is a daily rain total in mm, in [0, 20].
func (g *Generator) DailyRain() float64 {
	return float64(g.between(0, 20))
}

// ForecastNoise is the offset of a predicted median from its baseline, in [-10, 20].
func (g *Generator) ForecastNoise() float64 {
	return float64(g.between(-10, 20))
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}
