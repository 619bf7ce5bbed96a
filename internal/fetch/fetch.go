package fetch

import (
	"context"
	"fmt"

	"KnowledgeBase/internal/domain"
)

// Fetcher captures a single per-item metadata strategy (anthology page
// scraping, URL heuristics, etc.). Fetch returns whatever it could extract;
// a non-nil error means the remote part failed, but fields derived without
// the network (such as URL-based dates) are still valid in the returned
// meta.
type Fetcher interface {
	Kind() domain.SourceKind
	Fetch(ctx context.Context, rawURL string) (domain.PaperMeta, error)
}

// Registry keeps a mapping from source kinds to their fetchers.
type Registry struct {
	fetchers map[domain.SourceKind]Fetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[domain.SourceKind]Fetcher{}}
}

// Register adds or replaces a fetcher implementation.
func (r *Registry) Register(f Fetcher) {
	if r.fetchers == nil {
		r.fetchers = map[domain.SourceKind]Fetcher{}
	}
	r.fetchers[f.Kind()] = f
}

// Resolve returns the fetcher for a kind or an error if it is absent.
func (r *Registry) Resolve(kind domain.SourceKind) (Fetcher, error) {
	if f, ok := r.fetchers[kind]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("fetcher for %s is not registered", kind)
}
