package anthology

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const pageFixture = `<!DOCTYPE html>
<html>
<body>
  <p class="lead">
    <a href="/people/a/alice-example/">Alice Example</a>,
    <a href="/people/b/bob-sample/">Bob Sample</a>
  </p>
  <div class="card-body acl-abstract">
    <h5>Abstract</h5>
    <span>First sentence of the abstract.
    Second sentence here. Third sentence closes. Fourth is dropped.</span>
  </div>
</body>
</html>`

func TestFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pageFixture))
	}))
	defer server.Close()

	scraper := NewScraper(server.Client())

	meta, err := scraper.Fetch(context.Background(), server.URL+"/2023.acl-long.1/")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if meta.Date == nil || *meta.Date != "2023" {
		t.Fatalf("unexpected date: %v", meta.Date)
	}
	if meta.Summary == nil {
		t.Fatal("summary is nil")
	}
	want := "First sentence of the abstract. Second sentence here. Third sentence closes."
	if *meta.Summary != want {
		t.Fatalf("unexpected summary: %q", *meta.Summary)
	}
	if len(meta.Authors) != 2 || meta.Authors[0] != "Alice Example" || meta.Authors[1] != "Bob Sample" {
		t.Fatalf("unexpected authors: %v", meta.Authors)
	}
}

func TestFetchMissingAbstractIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Paper without abstract</h1></body></html>`))
	}))
	defer server.Close()

	scraper := NewScraper(server.Client())

	meta, err := scraper.Fetch(context.Background(), server.URL+"/D15-1013/")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if meta.Summary != nil {
		t.Fatalf("expected nil summary, got %q", *meta.Summary)
	}
	if meta.Date == nil || *meta.Date != "2015" {
		t.Fatalf("unexpected date: %v", meta.Date)
	}
}

func TestFetchFailureStillCarriesYear(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	scraper := NewScraper(server.Client())

	meta, err := scraper.Fetch(context.Background(), server.URL+"/2024.emnlp-main.557/")
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if meta.Date == nil || *meta.Date != "2024" {
		t.Fatalf("year must survive a failed fetch, got %v", meta.Date)
	}
	if meta.Summary != nil {
		t.Fatal("summary must stay nil on failure")
	}
}
