// Package arxiv talks to the arxiv metadata API and condenses its Atom
// responses into paper metadata records.
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"KnowledgeBase/internal/classify"
	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/fetch"
	"KnowledgeBase/internal/ports"
)

const (
	defaultAPIURL     = "https://export.arxiv.org/api/query"
	defaultBatchSize  = 50
	defaultBatchDelay = 3 * time.Second
)

// Client fetches paper metadata in id_list batches.
type Client struct {
	apiURL     string
	batchSize  int
	batchDelay time.Duration
	client     *http.Client
}

var _ ports.ArxivSource = (*Client)(nil)

// Option tweaks client construction.
type Option func(*Client)

// WithBatchSize caps how many ids go into a single API call.
func WithBatchSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithBatchDelay sets the pause between consecutive API calls.
func WithBatchDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.batchDelay = d
		}
	}
}

// NewClient wires an HTTP client; apiURL defaults to the public endpoint.
func NewClient(apiURL string, client *http.Client, opts ...Option) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		apiURL:     apiURL,
		batchSize:  defaultBatchSize,
		batchDelay: defaultBatchDelay,
		client:     client,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBatch looks up all ids, chunking requests to the batch size and
// pausing between chunks. Results found before a chunk fails are kept; the
// joined error reports which chunks broke.
func (c *Client) FetchBatch(ctx context.Context, ids []string) (map[string]domain.PaperMeta, error) {
	results := make(map[string]domain.PaperMeta, len(ids))
	var errs []error

	for start := 0; start < len(ids); start += c.batchSize {
		end := start + c.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		if start > 0 && c.batchDelay > 0 {
			select {
			case <-time.After(c.batchDelay):
			case <-ctx.Done():
				return results, errors.Join(append(errs, ctx.Err())...)
			}
		}

		metas, err := c.fetchChunk(ctx, chunk)
		if err != nil {
			errs = append(errs, fmt.Errorf("batch of %d ids: %w", len(chunk), err))
			continue
		}
		for id, meta := range metas {
			results[id] = meta
		}
	}

	return results, errors.Join(errs...)
}

// Lookup fetches a single paper's metadata.
func (c *Client) Lookup(ctx context.Context, id string) (domain.PaperMeta, error) {
	metas, err := c.fetchChunk(ctx, []string{id})
	if err != nil {
		return domain.PaperMeta{}, err
	}
	meta, ok := metas[id]
	if !ok {
		return domain.PaperMeta{}, fmt.Errorf("paper not found: %s", id)
	}
	return meta, nil
}

func (c *Client) fetchChunk(ctx context.Context, ids []string) (map[string]domain.PaperMeta, error) {
	query := url.Values{}
	query.Set("id_list", strings.Join(ids, ","))
	query.Set("max_results", strconv.Itoa(len(ids)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "KnowledgeBase/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	results := make(map[string]domain.PaperMeta, len(feed.Entries))
	for _, entry := range feed.Entries {
		id, ok := classify.ArxivID(entry.ID)
		if !ok {
			continue
		}
		results[id] = entryMeta(entry)
	}
	return results, nil
}

func entryMeta(entry atomEntry) domain.PaperMeta {
	meta := domain.PaperMeta{Title: fetch.CollapseSpace(entry.Title)}

	if abstract := strings.TrimSpace(entry.Summary); abstract != "" {
		summary := fetch.Condense(abstract, fetch.MaxSummarySentences)
		meta.Summary = &summary
	}
	if len(entry.Published) >= 10 {
		date := entry.Published[:10]
		meta.Date = &date
	}
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			meta.Authors = append(meta.Authors, name)
		}
	}
	return meta
}

// Atom feed structures for the arxiv API.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Authors   []atomAuthor `xml:"author"`
	Published string       `xml:"published"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}
