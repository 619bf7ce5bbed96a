// Package anthology scrapes paper landing pages in the ACL Anthology style:
// abstract text from the page body, authors from people links, year from the
// URL path.
package anthology

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"KnowledgeBase/internal/classify"
	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/fetch"
)

// abstractSelectors are tried in order; anthology markup has changed over
// the years.
var abstractSelectors = []string{
	"div.acl-abstract span",
	"div.card-body.acl-abstract span",
	"abstract",
}

// Scraper fetches one paper page per item and extracts what it can.
type Scraper struct {
	client *http.Client
}

var _ fetch.Fetcher = (*Scraper)(nil)

// NewScraper wires an HTTP client; the default skips TLS verification
// because anthology mirrors have a history of certificate problems.
func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}
	return &Scraper{client: client}
}

// Kind identifies the strategy inside the registry.
func (s *Scraper) Kind() domain.SourceKind {
	return domain.KindAnthology
}

// Fetch derives the year from the URL, then scrapes the page for abstract
// and authors. The year survives in the returned meta even when the page
// fetch fails, so callers can persist it and retry the summary later.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (domain.PaperMeta, error) {
	var meta domain.PaperMeta
	if year, ok := classify.AnthologyYear(rawURL); ok {
		meta.Date = &year
	}

	doc, err := s.fetchDocument(ctx, rawURL)
	if err != nil {
		return meta, err
	}

	if abstract := findAbstract(doc); abstract != "" {
		meta.Summary = &abstract
	}
	meta.Authors = findAuthors(doc)
	return meta, nil
}

func (s *Scraper) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; KnowledgeBase/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthology returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	return doc, nil
}

func findAbstract(doc *goquery.Document) string {
	for _, selector := range abstractSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		text = strings.TrimSpace(strings.TrimPrefix(text, "Abstract:"))
		if text != "" {
			return fetch.Condense(text, fetch.MaxSummarySentences)
		}
	}
	return ""
}

func findAuthors(doc *goquery.Document) []string {
	var authors []string
	doc.Find(`a[href^="/people/"]`).Each(func(i int, link *goquery.Selection) {
		if name := strings.TrimSpace(link.Text()); name != "" {
			authors = append(authors, name)
		}
	})
	return authors
}
