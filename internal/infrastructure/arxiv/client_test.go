package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2402.12329v1</id>
    <title>A  Sample
 Paper Title</title>
    <summary>
      First sentence of the abstract. Second sentence with detail.
      Third sentence closes it. Fourth sentence must be cut.
    </summary>
    <published>2024-02-19T18:59:02Z</published>
    <author><name>Alice Example</name></author>
    <author><name>Bob Sample</name></author>
  </entry>
</feed>`

func TestFetchBatch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id_list"); got != "2402.12329" {
			t.Errorf("unexpected id_list: %s", got)
		}
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), WithBatchDelay(0))

	metas, err := client.FetchBatch(context.Background(), []string{"2402.12329"})
	if err != nil {
		t.Fatalf("FetchBatch error: %v", err)
	}

	meta, ok := metas["2402.12329"]
	if !ok {
		t.Fatalf("id missing from results: %v", metas)
	}
	if meta.Title != "A Sample Paper Title" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.Summary == nil {
		t.Fatal("summary is nil")
	}
	want := "First sentence of the abstract. Second sentence with detail. Third sentence closes it."
	if *meta.Summary != want {
		t.Fatalf("unexpected summary: %q", *meta.Summary)
	}
	if meta.Date == nil || *meta.Date != "2024-02-19" {
		t.Fatalf("unexpected date: %v", meta.Date)
	}
	if len(meta.Authors) != 2 || meta.Authors[0] != "Alice Example" || meta.Authors[1] != "Bob Sample" {
		t.Fatalf("unexpected authors: %v", meta.Authors)
	}
}

func TestFetchBatchChunksAndKeepsPartialResults(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), WithBatchSize(1), WithBatchDelay(0))

	metas, err := client.FetchBatch(context.Background(), []string{"2402.12329", "2106.00001"})
	if err == nil {
		t.Fatal("expected an error for the failed chunk")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("error does not mention upstream status: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 chunked calls, got %d", calls)
	}
	if _, ok := metas["2402.12329"]; !ok {
		t.Fatal("result from the successful chunk was dropped")
	}
	if _, ok := metas["2106.00001"]; ok {
		t.Fatal("failed chunk must not produce a result")
	}
}

func TestFetchBatchBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), WithBatchDelay(0))
	if _, err := client.FetchBatch(context.Background(), []string{"2402.12329"}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), WithBatchDelay(0))

	meta, err := client.Lookup(context.Background(), "2402.12329")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if meta.Title != "A Sample Paper Title" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}

	if _, err := client.Lookup(context.Background(), "9999.99999"); err == nil {
		t.Fatal("expected not-found error for id absent from the feed")
	}
}
