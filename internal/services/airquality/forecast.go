package airquality

import (
	"math"

	"envhealth-api/internal/models"
)

const (
	bandBelow = 15.0
	bandAbove = 25.0
)

type Synthesizer struct {
	gen *Generator
}

func NewSynthesizer(gen *Generator) *Synthesizer {
	return &Synthesizer{gen: gen}
}

// Synthesize projects horizonDays points starting at today. The band is
// [max(0, baseline-15), baseline+25] and each median is baseline plus noise,
// clamped into the band.
func (s *Synthesizer) Synthesize(baseline float64, horizonDays int, today models.Date) []models.ForecastPoint {
	if horizonDays <= 0 {
		return []models.ForecastPoint{}
	}

	p10 := math.Max(0, baseline-bandBelow)
	p90 := baseline + bandAbove

	points := make([]models.ForecastPoint, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		point := models.ForecastPoint{
			Date:            today.AddDays(i),
			PredictedMedian: clamp(baseline+s.gen.ForecastNoise(), p10, p90),
			P10:             p10,
			P90:             p90,
		}
		if i == 0 {
			observed := baseline
			point.Observed = &observed
		}
		points = append(points, point)
	}

	return points
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
