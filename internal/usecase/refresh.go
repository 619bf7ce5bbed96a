package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"KnowledgeBase/internal/ports"
)

// Refresher runs the full load-enrich-save-regenerate pass. Store failures
// are fatal and nothing is written; a viewer render failure after a
// successful save is logged but does not fail the pass, so enrichment
// results are never lost to a template problem.
type Refresher struct {
	store    ports.Store
	enricher *Enricher
	renderer ports.Renderer
	logger   *slog.Logger
}

// NewRefresher constructs the pass runner.
func NewRefresher(store ports.Store, enricher *Enricher, renderer ports.Renderer, logger *slog.Logger) *Refresher {
	return &Refresher{
		store:    store,
		enricher: enricher,
		renderer: renderer,
		logger:   logger,
	}
}

// Run performs one complete pass and returns its report.
func (r *Refresher) Run(ctx context.Context) (Report, error) {
	kb, err := r.store.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load store: %w", err)
	}

	report, err := r.enricher.Run(ctx, kb)
	if err != nil {
		return report, fmt.Errorf("enrich: %w", err)
	}

	if err := r.store.Save(ctx, kb); err != nil {
		return report, fmt.Errorf("save store: %w", err)
	}

	if err := r.renderer.Regenerate(kb); err != nil {
		r.logger.Error("viewer regeneration failed, store is saved", "error", err)
	}

	return report, nil
}
