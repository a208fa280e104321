package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"envhealth-api/config"
	"envhealth-api/internal/repositories"
	"envhealth-api/internal/services/ingest"
	"envhealth-api/pkg/logger"
)

const historyTimeout = 30 * time.Second

func main() {
	city := flag.String("city", "", "city whose PM2.5 history is downloaded (required)")
	out := flag.String("out", "", "path of the CSV file to write (required)")
	limit := flag.Int("limit", ingest.DefaultPageSize, "rows requested per page")
	every := flag.Duration("every", 0, "repeat the download at this interval until interrupted")
	pause := flag.Duration("pause", time.Second, "delay between page requests")
	flag.Parse()

	if *city == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewZapLogger(logger.Options{
		AppName: cnf.App.Name + "-ingest",
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, os.Stdout)
	defer func() { _ = l.Stop() }()

	repo := repositories.NewOpenAQRepository(repositories.OpenAQOptions{
		BaseURL:    cnf.OpenAQ.BaseURL,
		HistoryURL: cnf.OpenAQ.HistoryURL,
		APIKey:     cnf.OpenAQ.APIKey,
		Timeout:    historyTimeout,
	}, l, repositories.NewHTTPClient(historyTimeout))

	svc := ingest.NewService(repo, ingest.Options{PageSize: *limit, Pause: *pause}, l)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() {
		if err := writeFile(ctx, svc, *city, *out); err != nil {
			l.Error(err, map[string]any{"city": *city, "out": *out})
		}
	}

	if *every <= 0 {
		if err := writeFile(ctx, svc, *city, *out); err != nil {
			l.Error(err, map[string]any{"city": *city, "out": *out})
			os.Exit(1)
		}
		return
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(*every).Do(run); err != nil {
		l.Fatal("cannot schedule ingestion", map[string]any{"err": err.Error(), "every": every.String()})
	}
	s.StartAsync()

	l.Info("scheduled ingestion started", map[string]any{"city": *city, "every": every.String()})

	<-ctx.Done()
	s.Stop()
	l.Warning("scheduled ingestion stopped")
}

// writeFile replaces out only once the whole archive has been downloaded.
func writeFile(ctx context.Context, svc *ingest.Service, city, out string) error {
	tmp, err := os.CreateTemp(filepath.Dir(out), filepath.Base(out)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := svc.Run(ctx, city, tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), out)
}
