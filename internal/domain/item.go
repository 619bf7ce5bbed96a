package domain

// ItemType labels what kind of resource a bookmark points at.
type ItemType string

const (
	TypePaper ItemType = "paper"
	TypeRepo  ItemType = "repo"
	TypeBlog  ItemType = "blog"
	TypeVideo ItemType = "video"
	TypeTool  ItemType = "tool"
	TypePod   ItemType = "pod"
	TypeDocs  ItemType = "docs"
	TypeNews  ItemType = "news"
	TypeOther ItemType = "other"
)

// SourceKind is the classification of a paper's metadata source.
type SourceKind string

const (
	KindArxiv      SourceKind = "arxiv"
	KindAnthology  SourceKind = "anthology"
	KindOtherPaper SourceKind = "other-paper"
	KindNonPaper   SourceKind = "non-paper"
)

// Item is a single bookmark entry. Summary, Date and Authors stay null
// until enrichment; a non-null summary marks the item as done.
type Item struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Type    ItemType `json:"type"`
	Source  string   `json:"source"`
	Summary *string  `json:"summary"`
	Date    *string  `json:"date"`
	Authors []string `json:"authors"`
}

// Enriched reports whether the item carries a summary and must never be
// re-fetched.
func (i *Item) Enriched() bool {
	return i.Summary != nil && *i.Summary != ""
}

// PaperMeta is the partial record a fetcher produces for one paper.
// Nil fields mean "nothing found"; the enricher only merges non-nil values
// into still-empty item fields.
type PaperMeta struct {
	Title   string
	Summary *string
	Date    *string
	Authors []string
}

// Category groups items under a curated heading. Order of categories and of
// items inside them is insertion order and must survive a rewrite.
type Category struct {
	Name  string  `json:"name"`
	Items []*Item `json:"items"`
}

// Metadata carries document-level fields of the knowledge base.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	TotalItems  int    `json:"total_items"`
}

// KnowledgeBase is the whole persisted document.
type KnowledgeBase struct {
	Metadata   Metadata   `json:"metadata"`
	Categories []Category `json:"categories"`
}

// Items walks every item in document order.
func (kb *KnowledgeBase) Items(visit func(item *Item)) {
	for _, cat := range kb.Categories {
		for _, item := range cat.Items {
			visit(item)
		}
	}
}

// Recount refreshes metadata.total_items from the category contents.
func (kb *KnowledgeBase) Recount() {
	total := 0
	for _, cat := range kb.Categories {
		total += len(cat.Items)
	}
	kb.Metadata.TotalItems = total
}
