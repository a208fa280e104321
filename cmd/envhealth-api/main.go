package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"envhealth-api/config"
	v1 "envhealth-api/internal/controllers/http/v1"
	"envhealth-api/internal/models"
	"envhealth-api/internal/repositories"
	"envhealth-api/internal/services/airquality"
	"envhealth-api/pkg/httpserver"
	"envhealth-api/pkg/logger"
	"envhealth-api/pkg/observe"
)

// @title EnvHealth API
// @version 1.0.0
// @description Air-quality risk for Indian cities from PM2.5 and rainfall, with synthetic fallbacks and a short-range forecast.

// @contact.name EnvHealth API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name AirQuality
// @tag.description PM2.5 summary, forecast and daily history
// @tag.name Status
// @tag.description Liveness and endpoint discovery
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	l, hook := newLogger(cnf)

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}, l)

	sources := repositories.InitSourceRepositories(cnf, l, repositories.NewHTTPClient(cnf.OpenAQ.RequestTimeout()))

	// fetchers stay nil interfaces in synthetic mode
	var (
		pm25 airquality.PM25Fetcher
		rain airquality.RainfallFetcher
	)
	if sources.OpenAQ != nil {
		pm25 = sources.OpenAQ
	}
	if sources.OpenWeather != nil {
		rain = sources.OpenWeather
	}

	service := airquality.NewService(
		airquality.NewCoordinateResolver(cityTable(cnf), cnf.Cities.Default),
		pm25,
		rain,
		airquality.NewGenerator(nil),
		airquality.Options{
			RadiusMeters: cnf.OpenAQ.RadiusMeters,
			ForecastDays: cnf.App.ForecastDays,
		},
		l,
	)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"mode":    cnf.App.Mode,
		"version": cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

func cityTable(cnf *config.Config) map[string]models.Coordinate {
	table := make(map[string]models.Coordinate, len(cnf.Cities.Table))
	for name, c := range cnf.Cities.Table {
		table[name] = models.Coordinate{Latitude: c.Lat, Longitude: c.Lon}
	}
	return table
}

// newLogger attaches the Sentry hook when a DSN is configured and entries are JSON.
func newLogger(cnf *config.Config) (*logger.Logger, *observe.SentryHook) {
	opts := logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" && cnf.Log.Format == "json" {
		h, err := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentry disabled: %v\n", err)
		} else {
			hook = h
			writers = append(writers, hook)
		}
	}

	return logger.NewZapLogger(opts, writers...), hook
}
