package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envhealth-api/config"
	"envhealth-api/pkg/logger"
)

func TestInitSourceRepositories(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAQ.APIKey = "aq"
	cfg.OpenWeather.APIKey = "ow"
	cfg.OpenWeather.Timeout = 3

	sources := InitSourceRepositories(cfg, logger.NewNop(), NewHTTPClient(time.Second))
	require.NotNil(t, sources.OpenAQ)
	require.NotNil(t, sources.OpenWeather)

	assert.Equal(t, cfg.OpenAQ.BaseURL, sources.OpenAQ.baseURL)
	assert.Equal(t, cfg.OpenAQ.HistoryURL, sources.OpenAQ.historyURL)
	assert.Equal(t, "aq", sources.OpenAQ.apiKey)
	assert.Equal(t, "ow", sources.OpenWeather.apiKey)
	assert.Equal(t, 3*time.Second, sources.OpenWeather.timeout)
}

func TestInitSourceRepositories_SyntheticMode(t *testing.T) {
	cfg := config.Default()
	cfg.App.Mode = config.ModeSynthetic

	sources := InitSourceRepositories(cfg, logger.NewNop(), NewHTTPClient(time.Second))
	assert.Nil(t, sources.OpenAQ)
	assert.Nil(t, sources.OpenWeather)
}

func TestNewHTTPClient_DefaultTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, NewHTTPClient(0).Timeout)
	assert.Equal(t, 3*time.Second, NewHTTPClient(3*time.Second).Timeout)
}
