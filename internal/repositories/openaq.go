package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"envhealth-api/internal/models"
	"envhealth-api/pkg/logger"
)

const (
	OpenAQBaseURL        = "https://api.openaq.org/v3/measurements"
	OpenAQHistoryBaseURL = "https://api.openaq.org/v2/measurements"
)

type OpenAQRepository struct {
	baseURL    string
	historyURL string
	apiKey     string
	timeout    time.Duration
	httpClient HTTPClient
	breaker    *gobreaker.CircuitBreaker
	l          *logger.Logger
	now        func() time.Time
}

type OpenAQOptions struct {
	BaseURL    string
	HistoryURL string
	APIKey     string
	Timeout    time.Duration
}

func NewOpenAQRepository(opts OpenAQOptions, l *logger.Logger, httpClient HTTPClient) *OpenAQRepository {
	if opts.BaseURL == "" {
		opts.BaseURL = OpenAQBaseURL
	}
	if opts.HistoryURL == "" {
		opts.HistoryURL = OpenAQHistoryBaseURL
	}

	return &OpenAQRepository{
		baseURL:    opts.BaseURL,
		historyURL: opts.HistoryURL,
		apiKey:     opts.APIKey,
		timeout:    opts.Timeout,
		httpClient: httpClient,
		breaker:    newBreaker("openaq"),
		l:          l,
		now:        time.Now,
	}
}

func (o *OpenAQRepository) Name() string {
	return "openaq"
}

type openAQLatestResponse struct {
	Results []struct {
		Value    *float64 `json:"value"`
		Datetime struct {
			UTC string `json:"utc"`
		} `json:"datetime"`
	} `json:"results"`
}

// FetchPM25 asks for the single most recent PM2.5 measurement within radiusMeters of
// coord. It returns ErrNoData when the provider has no results, and ErrSourceUnavailable
// when the first result carries no value.
func (o *OpenAQRepository) FetchPM25(ctx context.Context, coord models.Coordinate, radiusMeters int) (models.Measurement, error) {
	params := url.Values{}
	params.Set("coordinates", coord.String())
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("parameter", "pm25")
	params.Set("limit", "1")
	params.Set("sort", "desc")
	params.Set("order_by", "datetime")

	o.l.Debug("making openaq API request", map[string]any{
		"coordinates": coord.String(),
		"radius":      radiusMeters,
	})

	var response openAQLatestResponse
	if err := getJSON(ctx, o.httpClient, o.breaker, o.timeout, o.baseURL+"?"+params.Encode(), o.header(), &response); err != nil {
		return models.Measurement{}, err
	}

	o.l.Debug("parsed openaq API response", map[string]any{
		"results": len(response.Results),
	})

	if len(response.Results) == 0 {
		return models.Measurement{}, ErrNoData
	}

	first := response.Results[0]
	if first.Value == nil {
		return models.Measurement{}, unavailable(errors.New("result without value"))
	}

	ts, err := time.Parse(time.RFC3339, first.Datetime.UTC)
	if err != nil {
		ts = o.now().UTC()
	}

	return models.Measurement{
		Value:     *first.Value,
		Kind:      models.KindPM25,
		Source:    models.SourceLive,
		Timestamp: ts,
	}, nil
}

func (o *OpenAQRepository) header() http.Header {
	h := http.Header{}
	if o.apiKey != "" {
		h.Set("X-API-Key", o.apiKey)
	}
	return h
}

type openAQHistoryResponse struct {
	Meta struct {
		Found any `json:"found"`
	} `json:"meta"`
	Results []struct {
		Parameter string  `json:"parameter"`
		Value     float64 `json:"value"`
		Unit      string  `json:"unit"`
		Location  string  `json:"location"`
		Date      struct {
			UTC string `json:"utc"`
		} `json:"date"`
		Coordinates struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"coordinates"`
	} `json:"results"`
}

// MeasurementPage is one page of archived measurements. Found is the provider's total
// count, or -1 when it did not report an exact number.
type MeasurementPage struct {
	Measurements []models.HistoricalMeasurement
	Found        int
}

// FetchCityPage reads one page of PM2.5 history for city, newest first.
func (o *OpenAQRepository) FetchCityPage(ctx context.Context, city string, page, limit int) (MeasurementPage, error) {
	params := url.Values{}
	params.Set("city", city)
	params.Set("parameter", "pm25")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("page", strconv.Itoa(page))
	params.Set("offset", "0")
	params.Set("sort", "desc")

	o.l.Info("making openaq history request", map[string]any{
		"city":  city,
		"page":  page,
		"limit": limit,
	})

	var response openAQHistoryResponse
	if err := getJSON(ctx, o.httpClient, o.breaker, o.timeout, o.historyURL+"?"+params.Encode(), o.header(), &response); err != nil {
		return MeasurementPage{}, err
	}

	result := MeasurementPage{
		Measurements: make([]models.HistoricalMeasurement, 0, len(response.Results)),
		Found:        foundCount(response.Meta.Found),
	}

	for _, r := range response.Results {
		ts, err := time.Parse(time.RFC3339, r.Date.UTC)
		if err != nil {
			return MeasurementPage{}, fmt.Errorf("%w: bad timestamp %q: %w", ErrSourceUnavailable, r.Date.UTC, err)
		}
		result.Measurements = append(result.Measurements, models.HistoricalMeasurement{
			UTC:       ts,
			Parameter: r.Parameter,
			Value:     r.Value,
			Unit:      r.Unit,
			Location:  r.Location,
			Lat:       r.Coordinates.Latitude,
			Lon:       r.Coordinates.Longitude,
		})
	}

	return result, nil
}

// foundCount reads meta.found, which OpenAQ reports either as a number or as a string
// such as ">100000".
func foundCount(v any) int {
	switch found := v.(type) {
	case float64:
		return int(found)
	case string:
		if n, err := strconv.Atoi(found); err == nil {
			return n
		}
	}
	return -1
}
