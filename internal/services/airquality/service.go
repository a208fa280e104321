package airquality

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"envhealth-api/internal/models"
	"envhealth-api/internal/repositories"
	"envhealth-api/pkg/logger"
)

const (
	defaultRadiusMeters = 50000
	defaultForecastDays = 5
)

type PM25Fetcher interface {
	Name() string
	FetchPM25(ctx context.Context, coord models.Coordinate, radiusMeters int) (models.Measurement, error)
}

type RainfallFetcher interface {
	Name() string
	FetchRainfall(ctx context.Context, coord models.Coordinate) (models.Measurement, error)
}

type Options struct {
	RadiusMeters int
	ForecastDays int
	Now          func() time.Time
}

// Service answers summary, forecast and daily history requests. A nil fetcher
// disables that source and is treated exactly like an unavailable one.
type Service struct {
	resolver *CoordinateResolver
	pm25     PM25Fetcher
	rain     RainfallFetcher
	gen      *Generator
	synth    *Synthesizer
	opts     Options
	l        *logger.Logger
}

func NewService(
	resolver *CoordinateResolver,
	pm25 PM25Fetcher,
	rain RainfallFetcher,
	gen *Generator,
	opts Options,
	l *logger.Logger,
) *Service {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = defaultRadiusMeters
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = defaultForecastDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		resolver: resolver,
		pm25:     pm25,
		rain:     rain,
		gen:      gen,
		synth:    NewSynthesizer(gen),
		opts:     opts,
		l:        l,
	}
}

func (s *Service) DefaultCity() string {
	return s.resolver.DefaultCity()
}

func (s *Service) Cities() []string {
	return s.resolver.Cities()
}

// Summary never fails. An unreachable PM2.5 source is replaced by a synthetic value;
// a reachable source with no data leaves the value absent. Rainfall falls back to 0.
func (s *Service) Summary(ctx context.Context, city string) models.Summary {
	coord := s.resolver.Resolve(city)

	var (
		pm25   *float64
		source models.DataSource
		rain   float64
	)

	var g errgroup.Group
	g.Go(func() error {
		pm25, source = s.currentPM25(ctx, city, coord)
		return nil
	})
	g.Go(func() error {
		rain = s.recentRain(ctx, city, coord)
		return nil
	})
	_ = g.Wait()

	summary := models.Summary{
		City:         city,
		CurrentPM25:  pm25,
		RecentRainMM: &rain,
		RiskLevel:    Classify(pm25),
		PM25Source:   source,
	}

	s.l.Info("summary computed", map[string]any{
		"city":       city,
		"pm25Source": source,
		"riskLevel":  summary.RiskLevel,
	})

	return summary
}

// Forecast builds a synthetic projection around the current PM2.5 baseline.
func (s *Service) Forecast(ctx context.Context, city string) models.ForecastResult {
	coord := s.resolver.Resolve(city)
	baseline, confidence := s.forecastBaseline(ctx, city, coord)
	today := models.DateOf(s.opts.Now())

	result := models.ForecastResult{
		Timeline: s.synth.Synthesize(baseline, s.opts.ForecastDays, today),
		Locations: []models.ForecastLocation{{
			Lat:  coord.Latitude,
			Lon:  coord.Longitude,
			PM25: baseline,
			Risk: ClassifyValue(baseline),
			Name: city,
		}},
		Next24h: models.Next24h{
			PM25Median:          baseline,
			EstimatedAdmissions: int(math.Floor(baseline / 10)),
			Confidence:          confidence,
		},
	}

	s.l.Info("forecast computed", map[string]any{
		"city":       city,
		"baseline":   baseline,
		"days":       len(result.Timeline),
		"confidence": confidence,
	})

	return result
}

// DailyHistory returns n placeholder rows for the n days ending today, newest first.
func (s *Service) DailyHistory(city string, n int) []models.DailyRow {
	if n <= 0 {
		return []models.DailyRow{}
	}

	today := models.DateOf(s.opts.Now())
	rows := make([]models.DailyRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.DailyRow{
			Date:        today.AddDays(-i),
			City:        city,
			AvgPM25:     s.gen.DailyPM25(),
			DailyRainMM: s.gen.DailyRain(),
		})
	}

	return rows
}

func (s *Service) currentPM25(ctx context.Context, city string, coord models.Coordinate) (*float64, models.DataSource) {
	if s.pm25 == nil {
		v := s.gen.PM25()
		return &v, models.SourceSynthetic
	}

	m, err := s.pm25.FetchPM25(ctx, coord, s.opts.RadiusMeters)
	switch {
	case err == nil:
		return &m.Value, models.SourceLive
	case errors.Is(err, repositories.ErrNoData):
		s.l.Info("no pm25 data near city", map[string]any{
			"source": s.pm25.Name(),
			"city":   city,
			"coord":  coord.String(),
		})
		return nil, models.SourceNone
	default:
		v := s.gen.PM25()
		s.l.Warning("pm25 source unavailable, using synthetic value", map[string]any{
			"source":    s.pm25.Name(),
			"city":      city,
			"coord":     coord.String(),
			"err":       err.Error(),
			"synthetic": v,
		})
		return &v, models.SourceSynthetic
	}
}

func (s *Service) recentRain(ctx context.Context, city string, coord models.Coordinate) float64 {
	if s.rain == nil {
		return 0
	}

	m, err := s.rain.FetchRainfall(ctx, coord)
	if err != nil {
		s.l.Warning("rainfall source unavailable, reporting no rain", map[string]any{
			"source": s.rain.Name(),
			"city":   city,
			"coord":  coord.String(),
			"err":    err.Error(),
		})
		return 0
	}

	return m.Value
}

// forecastBaseline prefers a live reading and otherwise substitutes a synthetic one.
// Confidence is Low only when the source answered with no data for the coordinate.
func (s *Service) forecastBaseline(ctx context.Context, city string, coord models.Coordinate) (float64, models.Confidence) {
	if s.pm25 == nil {
		return s.gen.PM25(), models.ConfidenceMedium
	}

	m, err := s.pm25.FetchPM25(ctx, coord, s.opts.RadiusMeters)
	if err == nil {
		return m.Value, models.ConfidenceMedium
	}

	v := s.gen.PM25()
	confidence := models.ConfidenceMedium
	if errors.Is(err, repositories.ErrNoData) {
		confidence = models.ConfidenceLow
	}

	s.l.Warning("no live forecast baseline, using synthetic value", map[string]any{
		"source":     s.pm25.Name(),
		"city":       city,
		"err":        err.Error(),
		"synthetic":  v,
		"confidence": confidence,
	})
	return v, confidence
}
