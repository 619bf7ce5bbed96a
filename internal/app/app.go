package app

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"KnowledgeBase/internal/config"
	"KnowledgeBase/internal/fetch"
	"KnowledgeBase/internal/infrastructure/anthology"
	"KnowledgeBase/internal/infrastructure/arxiv"
	"KnowledgeBase/internal/infrastructure/heuristic"
	"KnowledgeBase/internal/logging"
	"KnowledgeBase/internal/render"
	"KnowledgeBase/internal/server"
	"KnowledgeBase/internal/store"
	"KnowledgeBase/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	refresher *usecase.Refresher
	helper    *server.Server
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	arxivClient := arxiv.NewClient(
		cfg.Arxiv.APIURL,
		&http.Client{Timeout: cfg.Arxiv.Timeout()},
		arxiv.WithBatchSize(cfg.Arxiv.BatchSize),
		arxiv.WithBatchDelay(cfg.Arxiv.BatchDelay()),
	)

	anthologyClient := &http.Client{Timeout: cfg.Anthology.Timeout()}
	if cfg.Anthology.InsecureSkipVerify {
		anthologyClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	registry := fetch.NewRegistry()
	registry.Register(anthology.NewScraper(anthologyClient))
	registry.Register(heuristic.New())

	enricher := usecase.NewEnricher(usecase.EnricherDeps{
		Arxiv:     arxivClient,
		Fetchers:  registry,
		PageDelay: cfg.Anthology.PageDelay(),
		Logger:    baseLogger.With("component", "enricher"),
	})

	fileStore := store.NewFileStore(cfg.Store.Path)

	renderer, err := render.New(cfg.Store.HTMLPath)
	if err != nil {
		return nil, err
	}

	refresher := usecase.NewRefresher(fileStore, enricher, renderer,
		baseLogger.With("component", "refresher"))

	helper := server.New(server.Deps{
		Store:     fileStore,
		StorePath: cfg.Store.Path,
		HTMLPath:  cfg.Store.HTMLPath,
		Refresher: refresher,
		Renderer:  renderer,
		Arxiv:     arxivClient,
		Logger:    baseLogger.With("component", "server"),
	})

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		refresher: refresher,
		helper:    helper,
	}, nil
}

// Run performs a single enrich-save-regenerate pass.
func (a *Application) Run(ctx context.Context) error {
	_, err := a.refresher.Run(ctx)
	return err
}

// Serve starts the live-edit helper. A missing viewer file is regenerated
// first so the browser has something to load.
func (a *Application) Serve(addr string) error {
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	if _, err := os.Stat(a.cfg.Store.HTMLPath); errors.Is(err, os.ErrNotExist) {
		if err := a.Run(context.Background()); err != nil {
			return err
		}
	}

	return a.helper.Run(addr)
}
