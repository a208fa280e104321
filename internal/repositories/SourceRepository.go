package repositories

import (
	"envhealth-api/config"
	"envhealth-api/pkg/logger"
)

// Sources holds the live upstream clients. Both are nil in synthetic mode.
type Sources struct {
	OpenAQ      *OpenAQRepository
	OpenWeather *OpenWeatherRepository
}

func InitSourceRepositories(cfg *config.Config, l *logger.Logger, httpClient HTTPClient) Sources {
	if !cfg.IsLive() {
		l.Info("live sources disabled", map[string]any{"mode": cfg.App.Mode})
		return Sources{}
	}

	return Sources{
		OpenAQ: NewOpenAQRepository(OpenAQOptions{
			BaseURL:    cfg.OpenAQ.BaseURL,
			HistoryURL: cfg.OpenAQ.HistoryURL,
			APIKey:     cfg.OpenAQ.APIKey,
			Timeout:    cfg.OpenAQ.RequestTimeout(),
		}, l, httpClient),
		OpenWeather: NewOpenWeatherRepository(
			cfg.OpenWeather.BaseURL,
			cfg.OpenWeather.APIKey,
			cfg.OpenWeather.RequestTimeout(),
			l,
			httpClient,
		),
	}
}
