package ports

import (
	"context"

	"KnowledgeBase/internal/domain"
)

// ArxivSource looks up paper metadata by arxiv identifier. FetchBatch may
// return partial results alongside an error when only some batches failed;
// ids absent from the result map were not found upstream.
type ArxivSource interface {
	FetchBatch(ctx context.Context, ids []string) (map[string]domain.PaperMeta, error)
	Lookup(ctx context.Context, id string) (domain.PaperMeta, error)
}

// Store reads and rewrites the persisted knowledge base. Save must never
// leave a truncated document behind.
type Store interface {
	Load(ctx context.Context) (*domain.KnowledgeBase, error)
	Save(ctx context.Context, kb *domain.KnowledgeBase) error
}

// Renderer rewrites the static viewer from the current document. Rendering
// the same document twice must produce identical bytes.
type Renderer interface {
	Regenerate(kb *domain.KnowledgeBase) error
}
