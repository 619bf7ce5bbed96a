// Package heuristic is the offline fallback for paper URLs that match no
// known metadata source: it only derives a publication year from the URL
// path.
package heuristic

import (
	"context"

	"KnowledgeBase/internal/classify"
	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/fetch"
)

// Fetcher never touches the network.
type Fetcher struct{}

var _ fetch.Fetcher = (*Fetcher)(nil)

// New builds the heuristic fetcher.
func New() *Fetcher {
	return &Fetcher{}
}

// Kind identifies the strategy inside the registry.
func (f *Fetcher) Kind() domain.SourceKind {
	return domain.KindOtherPaper
}

// Fetch scans the URL for a plausible year; summary and authors stay null,
// so the item remains eligible for retry on every run.
func (f *Fetcher) Fetch(_ context.Context, rawURL string) (domain.PaperMeta, error) {
	var meta domain.PaperMeta
	if year, ok := classify.YearFromURL(rawURL); ok {
		meta.Date = &year
	}
	return meta, nil
}
