package usecase

import (
	"context"
	"log/slog"
	"time"

	"KnowledgeBase/internal/classify"
	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/fetch"
	"KnowledgeBase/internal/ports"
)

// EnricherDeps wires all driven adapters into the enrichment pass.
type EnricherDeps struct {
	Arxiv     ports.ArxivSource
	Fetchers  *fetch.Registry
	PageDelay time.Duration
	Logger    *slog.Logger
}

// Enricher runs one classification-and-fetch pass over the knowledge base.
// Per-item failures are contained: they are counted, logged, and never stop
// the pass.
type Enricher struct {
	arxiv     ports.ArxivSource
	fetchers  *fetch.Registry
	pageDelay time.Duration
	logger    *slog.Logger
}

// Report summarizes a single pass.
type Report struct {
	Processed       int `json:"processed"`
	Enriched        int `json:"enriched"`
	AlreadyEnriched int `json:"already_enriched"`
	NonPaper        int `json:"non_paper"`
	Failed          int `json:"failed"`
}

// NewEnricher constructs the orchestration component.
func NewEnricher(deps EnricherDeps) *Enricher {
	return &Enricher{
		arxiv:     deps.Arxiv,
		fetchers:  deps.Fetchers,
		pageDelay: deps.PageDelay,
		logger:    deps.Logger,
	}
}

// Run mutates paper items in place. Items with a summary are terminal and
// skipped; non-paper items are never touched; everything else is classified,
// dispatched to the matching fetcher, and merged monotonically (a field is
// only set while still null). The error is non-nil only when the context is
// cancelled mid-pass.
func (e *Enricher) Run(ctx context.Context, kb *domain.KnowledgeBase) (Report, error) {
	var report Report

	// arxiv items are grouped by identifier so duplicates share one lookup
	// and the API sees batched id lists.
	arxivItems := map[string][]*domain.Item{}
	var arxivIDs []string
	var perItem []*domain.Item

	kb.Items(func(item *domain.Item) {
		if item.Enriched() {
			report.AlreadyEnriched++
			return
		}
		switch classify.Classify(item.URL, item.Type) {
		case domain.KindNonPaper:
			report.NonPaper++
		case domain.KindArxiv:
			id, _ := classify.ArxivID(item.URL)
			if _, seen := arxivItems[id]; !seen {
				arxivIDs = append(arxivIDs, id)
			}
			arxivItems[id] = append(arxivItems[id], item)
			report.Processed++
		default:
			perItem = append(perItem, item)
			report.Processed++
		}
	})

	if len(arxivIDs) > 0 {
		e.enrichArxiv(ctx, arxivIDs, arxivItems, &report)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	for i, item := range perItem {
		if i > 0 && e.pageDelay > 0 {
			select {
			case <-time.After(e.pageDelay):
			case <-ctx.Done():
				return report, ctx.Err()
			}
		}
		e.enrichItem(ctx, item, &report)
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	e.logger.Info("enrichment pass finished",
		"processed", report.Processed,
		"enriched", report.Enriched,
		"already_enriched", report.AlreadyEnriched,
		"non_paper", report.NonPaper,
		"failed", report.Failed,
	)
	return report, nil
}

func (e *Enricher) enrichArxiv(ctx context.Context, ids []string, items map[string][]*domain.Item, report *Report) {
	e.logger.Info("fetching arxiv metadata", "papers", len(ids))

	metas, err := e.arxiv.FetchBatch(ctx, ids)
	if err != nil {
		e.logger.Error("arxiv fetch incomplete", "error", err)
	}

	for _, id := range ids {
		meta, found := metas[id]
		for _, item := range items[id] {
			if !found {
				report.Failed++
				continue
			}
			if merge(item, meta) {
				report.Enriched++
			}
		}
		if !found {
			e.logger.Warn("arxiv id not resolved", "id", id)
		}
	}
}

func (e *Enricher) enrichItem(ctx context.Context, item *domain.Item, report *Report) {
	kind := classify.Classify(item.URL, item.Type)

	fetcher, err := e.fetchers.Resolve(kind)
	if err != nil {
		report.Failed++
		e.logger.Error("no fetcher for item", "url", item.URL, "kind", kind)
		return
	}

	meta, err := fetcher.Fetch(ctx, item.URL)
	// Partial results (URL-derived dates) are merged even when the remote
	// fetch failed; the item stays retryable until a summary lands.
	if merge(item, meta) {
		report.Enriched++
	}
	if err != nil {
		report.Failed++
		e.logger.Warn("fetch failed", "url", item.URL, "kind", kind, "error", err)
	}
}

// merge copies non-nil meta fields into still-null item fields and reports
// whether the item became enriched. Existing values are never overwritten.
func merge(item *domain.Item, meta domain.PaperMeta) bool {
	wasEnriched := item.Enriched()
	if item.Summary == nil && meta.Summary != nil {
		item.Summary = meta.Summary
	}
	if item.Date == nil && meta.Date != nil {
		item.Date = meta.Date
	}
	if item.Authors == nil && len(meta.Authors) > 0 {
		item.Authors = meta.Authors
	}
	return !wasEnriched && item.Enriched()
}
