package repositories

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"envhealth-api/internal/models"
	"envhealth-api/pkg/logger"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
)

type OpenWeatherRepository struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient HTTPClient
	breaker    *gobreaker.CircuitBreaker
	l          *logger.Logger
	now        func() time.Time
}

func NewOpenWeatherRepository(baseURL, apiKey string, timeout time.Duration, l *logger.Logger, httpClient HTTPClient) *OpenWeatherRepository {
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}

	return &OpenWeatherRepository{
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: httpClient,
		breaker:    newBreaker("openweather"),
		l:          l,
		now:        time.Now,
	}
}

func (w *OpenWeatherRepository) Name() string {
	return "openweather"
}

// The provider reports accumulation under exactly one of the two windows, if any.
type openWeatherResponse struct {
	Dt   int64 `json:"dt"`
	Rain *struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"rain"`
}

// FetchRainfall returns recent rain in mm at coord. A response without rain data
// means no rain and yields 0.
func (w *OpenWeatherRepository) FetchRainfall(ctx context.Context, coord models.Coordinate) (models.Measurement, error) {
	if strings.TrimSpace(w.apiKey) == "" {
		return models.Measurement{}, unavailable(errors.New("API key cannot be empty"))
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("appid", w.apiKey)
	params.Set("units", "metric")

	w.l.Debug("making openweather API request", map[string]any{
		"coordinates": coord.String(),
	})

	var response openWeatherResponse
	if err := getJSON(ctx, w.httpClient, w.breaker, w.timeout, w.baseURL+"?"+params.Encode(), nil, &response); err != nil {
		return models.Measurement{}, err
	}

	ts := w.now().UTC()
	if response.Dt > 0 {
		ts = time.Unix(response.Dt, 0).UTC()
	}

	return models.Measurement{
		Value:     rainfall(response),
		Kind:      models.KindRainfall,
		Source:    models.SourceLive,
		Timestamp: ts,
	}, nil
}

func rainfall(response openWeatherResponse) float64 {
	if response.Rain == nil {
		return 0
	}
	if response.Rain.OneH != nil {
		return *response.Rain.OneH
	}
	if response.Rain.ThreeH != nil {
		return *response.Rain.ThreeH
	}
	return 0
}
