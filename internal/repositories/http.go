package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
)

var (
	// ErrSourceUnavailable covers network failures, timeouts, non-200 statuses,
	// malformed payloads and an open circuit breaker.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNoData means the provider answered well-formed but had nothing to report.
	ErrNoData = errors.New("no data")
)

const defaultTimeout = 10 * time.Second

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns the shared outbound client.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// newBreaker trips after five consecutive failures and probes again after 30s.
// There are no retries: an open breaker fails the call at once.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

// getJSON performs a GET through the breaker and decodes a 200 body into out.
// Every failure is reported as ErrSourceUnavailable.
func getJSON(
	ctx context.Context,
	client HTTPClient,
	cb *gobreaker.CircuitBreaker,
	timeout time.Duration,
	url string,
	header http.Header,
	out any,
) error {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for k, v := range header {
			req.Header[k] = v
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to do request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}

		return nil, nil
	})
	if err != nil {
		return unavailable(err)
	}

	return nil
}
