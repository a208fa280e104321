package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/pkg/errors"

	"envhealth-api/internal/models"
	"envhealth-api/internal/repositories"
	"envhealth-api/pkg/logger"
)

const DefaultPageSize = 10000

type PageFetcher interface {
	FetchCityPage(ctx context.Context, city string, page, limit int) (repositories.MeasurementPage, error)
}

type Options struct {
	// PageSize is the number of rows requested per page.
	PageSize int
	// Pause is the delay between two page requests.
	Pause time.Duration
}

// Service downloads the PM2.5 archive of a city page by page and renders it as CSV.
type Service struct {
	fetcher PageFetcher
	opts    Options
	l       *logger.Logger
}

func NewService(fetcher PageFetcher, opts Options, l *logger.Logger) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return &Service{
		fetcher: fetcher,
		opts:    opts,
		l:       l,
	}
}

// Collect walks the pages until one comes back empty or the provider's reported total
// has been reached.
func (s *Service) Collect(ctx context.Context, city string) ([]models.HistoricalMeasurement, error) {
	var rows []models.HistoricalMeasurement

	for page := 1; ; page++ {
		result, err := s.fetcher.FetchCityPage(ctx, city, page, s.opts.PageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "fetch %s page %d", city, page)
		}

		if len(result.Measurements) == 0 {
			break
		}
		rows = append(rows, result.Measurements...)

		s.l.Debug("history page collected", map[string]any{
			"city":  city,
			"page":  page,
			"rows":  len(rows),
			"found": result.Found,
		})

		if result.Found >= 0 && len(rows) >= result.Found {
			break
		}

		if err := sleep(ctx, s.opts.Pause); err != nil {
			return nil, errors.Wrap(err, "interrupted between pages")
		}
	}

	return rows, nil
}

// Run collects the archive of city and writes it to w. It returns the number of rows written.
func (s *Service) Run(ctx context.Context, city string, w io.Writer) (int, error) {
	rows, err := s.Collect(ctx, city)
	if err != nil {
		return 0, err
	}

	if err := WriteCSV(w, rows); err != nil {
		return 0, err
	}

	s.l.Info("history ingested", map[string]any{
		"city": city,
		"rows": len(rows),
	})

	return len(rows), nil
}

// WriteCSV writes the header followed by one record per measurement.
func WriteCSV(w io.Writer, rows []models.HistoricalMeasurement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.CSVHeader()); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	for _, row := range rows {
		if err := cw.Write(row.CSVRecord()); err != nil {
			return errors.Wrap(err, "write csv record")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
