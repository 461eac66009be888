package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/rohmanhakim/nps-scraper/internal/config"
	"github.com/rohmanhakim/nps-scraper/internal/directory"
	"github.com/rohmanhakim/nps-scraper/internal/explorer"
	"github.com/rohmanhakim/nps-scraper/internal/fetcher"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/internal/places"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is the wired object graph of one command run.
type app struct {
	cfg      config.Config
	logger   *logrus.Logger
	store    cache.Store
	explorer *explorer.Explorer
}

func newApp(cmd *cobra.Command) (*app, error) {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	cfg, err := InitConfigWithError(logger)
	if err != nil {
		return nil, err
	}

	recorder := metadata.NewRecorder(logger)
	store := newStore(cfg, recorder)
	httpClient := &http.Client{Timeout: cfg.Timeout()}

	f := fetcher.NewCachingFetcher(recorder, store, httpClient)
	builder, err := directory.NewBuilder(cfg.SiteRoot(), f, store, cfg.UserAgent(), recorder)
	if err != nil {
		return nil, err
	}
	finder := places.NewClient(recorder, httpClient, places.Settings{
		Endpoint:   cfg.PlacesURL(),
		APIKey:     cfg.PlacesAPIKey(),
		Radius:     cfg.SearchRadius(),
		Units:      cfg.RadiusUnits(),
		MaxMatches: cfg.MaxMatches(),
		MaxResults: cfg.MaxResults(),
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		explorer: explorer.New(builder, f, finder, cfg.UserAgent(), recorder),
	}, nil
}

func newStore(cfg config.Config, sink metadata.MetadataSink) cache.Store {
	if cfg.NoCache() {
		return cache.NewMemoryStore()
	}
	return cache.NewFileStore(cfg.CacheFile(), sink)
}

func newLogger(out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	switch logFormat {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger, nil
}
