package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envhealth-api/internal/models"
	"envhealth-api/internal/repositories"
	"envhealth-api/pkg/logger"
)

type fakePages struct {
	pages  []repositories.MeasurementPage
	err    error
	errAt  int
	calls  []int
	limits []int
}

func (f *fakePages) FetchCityPage(_ context.Context, _ string, page, limit int) (repositories.MeasurementPage, error) {
	f.calls = append(f.calls, page)
	f.limits = append(f.limits, limit)

	if f.err != nil && page == f.errAt {
		return repositories.MeasurementPage{}, f.err
	}
	if page > len(f.pages) {
		return repositories.MeasurementPage{Found: -1}, nil
	}
	return f.pages[page-1], nil
}

func measurement(hour int, value float64) models.HistoricalMeasurement {
	return models.HistoricalMeasurement{
		UTC:       time.Date(2024, 1, 2, hour, 0, 0, 0, time.UTC),
		Parameter: "pm25",
		Value:     value,
		Unit:      "µg/m³",
		Location:  "Adarsh Nagar",
		Lat:       26.9,
		Lon:       75.8,
	}
}

func TestCollect_StopsWhenFoundReached(t *testing.T) {
	fetcher := &fakePages{pages: []repositories.MeasurementPage{
		{Measurements: []models.HistoricalMeasurement{measurement(3, 10), measurement(2, 11)}, Found: 3},
		{Measurements: []models.HistoricalMeasurement{measurement(1, 12)}, Found: 3},
		{Measurements: []models.HistoricalMeasurement{measurement(0, 13)}, Found: 3},
	}}
	svc := NewService(fetcher, Options{PageSize: 2}, logger.NewNop())

	rows, err := svc.Collect(context.Background(), "Jaipur")
	require.NoError(t, err)

	assert.Len(t, rows, 3)
	assert.Equal(t, []int{1, 2}, fetcher.calls)
	assert.Equal(t, []int{2, 2}, fetcher.limits)
}

func TestCollect_StopsOnEmptyPage(t *testing.T) {
	fetcher := &fakePages{pages: []repositories.MeasurementPage{
		{Measurements: []models.HistoricalMeasurement{measurement(3, 10)}, Found: -1},
		{Measurements: []models.HistoricalMeasurement{measurement(2, 11)}, Found: -1},
	}}
	svc := NewService(fetcher, Options{}, logger.NewNop())

	rows, err := svc.Collect(context.Background(), "Jaipur")
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.Equal(t, []int{1, 2, 3}, fetcher.calls)
	assert.Equal(t, DefaultPageSize, fetcher.limits[0])
}

func TestCollect_FetchError(t *testing.T) {
	fetcher := &fakePages{
		pages: []repositories.MeasurementPage{
			{Measurements: []models.HistoricalMeasurement{measurement(3, 10)}, Found: 10},
		},
		err:   fmt.Errorf("%w: status 502", repositories.ErrSourceUnavailable),
		errAt: 2,
	}
	svc := NewService(fetcher, Options{}, logger.NewNop())

	_, err := svc.Collect(context.Background(), "Jaipur")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "fetch Jaipur page 2")
}

func TestCollect_CancelledDuringPause(t *testing.T) {
	fetcher := &fakePages{pages: []repositories.MeasurementPage{
		{Measurements: []models.HistoricalMeasurement{measurement(3, 10)}, Found: 10},
	}}
	svc := NewService(fetcher, Options{Pause: time.Minute}, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Collect(ctx, "Jaipur")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, []int{1}, fetcher.calls)
}

func TestRun_WritesCSV(t *testing.T) {
	fetcher := &fakePages{pages: []repositories.MeasurementPage{
		{Measurements: []models.HistoricalMeasurement{measurement(3, 61.2), measurement(2, 58)}, Found: 2},
	}}
	svc := NewService(fetcher, Options{}, logger.NewNop())

	var buf bytes.Buffer
	n, err := svc.Run(context.Background(), "Jaipur", &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, strings.Join([]string{
		"utc,parameter,value,unit,location,lat,lon",
		"2024-01-02T03:00:00Z,pm25,61.2,µg/m³,Adarsh Nagar,26.9,75.8",
		"2024-01-02T02:00:00Z,pm25,58,µg/m³,Adarsh Nagar,26.9,75.8",
		"",
	}, "\n"), buf.String())
}

func TestRun_NoRowsWritesHeaderOnly(t *testing.T) {
	svc := NewService(&fakePages{}, Options{}, logger.NewNop())

	var buf bytes.Buffer
	n, err := svc.Run(context.Background(), "Nowhere", &buf)
	require.NoError(t, err)

	assert.Equal(t, 0, n)
	assert.Equal(t, "utc,parameter,value,unit,location,lat,lon\n", buf.String())
}

func TestRun_AgainstOpenAQHistory(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.Write([]byte(`{"meta":{"found":1},"results":[]}`))
			return
		}
		w.Write([]byte(`{
			"meta": {"found": 1},
			"results": [{
				"parameter": "pm25",
				"value": 44,
				"unit": "µg/m³",
				"location": "Shastri Nagar",
				"date": {"utc": "2024-03-01T10:00:00Z"},
				"coordinates": {"latitude": 26.95, "longitude": 75.79}
			}]
		}`))
	}))
	defer mockServer.Close()

	repo := repositories.NewOpenAQRepository(repositories.OpenAQOptions{
		BaseURL:    mockServer.URL,
		HistoryURL: mockServer.URL,
		Timeout:    time.Second,
	}, logger.NewNop(), repositories.NewHTTPClient(time.Second))
	svc := NewService(repo, Options{PageSize: 100}, logger.NewNop())

	var buf bytes.Buffer
	n, err := svc.Run(context.Background(), "Jaipur", &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "2024-03-01T10:00:00Z,pm25,44,µg/m³,Shastri Nagar,26.95,75.79\n")
}
