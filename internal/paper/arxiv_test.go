package paper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/query</id>
  <updated>2026-10-16T00:00:00-04:00</updated>
  <entry>
    <id>http://arxiv.org/abs/2610.00003v1</id>
    <published>2026-10-15T17:59:59Z</published>
    <title>Newest Paper:
      Scaling   Things</title>
    <summary>abstract</summary>
    <link href="http://arxiv.org/abs/2610.00003v1" rel="alternate" type="text/html"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2610.00002v1</id>
    <published>2026-10-15T16:00:00Z</published>
    <title>Second Paper</title>
    <summary>abstract</summary>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2610.00001v2</id>
    <published>2026-10-15T15:00:00Z</published>
    <title>Third Paper</title>
    <summary>abstract</summary>
  </entry>
</feed>`

func newTestSource(url string) Source {
	return New(config.FeedConfig{
		URL:        url,
		Categories: []string{"cs.AI", "cs.LG"},
		Timeout:    5 * time.Second,
	}, nil, logger.Nop())
}

func TestFetchMapsEntries(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		if r.URL.Query().Get("sortOrder") != "descending" {
			t.Errorf("sortOrder = %q", r.URL.Query().Get("sortOrder"))
		}
		if r.URL.Query().Get("max_results") != "3" {
			t.Errorf("max_results = %q", r.URL.Query().Get("max_results"))
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomFeed))
	}))
	defer srv.Close()

	papers := newTestSource(srv.URL).Fetch(context.Background(), 3)
	if len(papers) != 3 {
		t.Fatalf("len(papers) = %d, want 3", len(papers))
	}
	if gotQuery != "cat:cs.AI OR cat:cs.LG" {
		t.Errorf("search_query = %q", gotQuery)
	}

	first := papers[0]
	if first.Title != "Newest Paper: Scaling Things" {
		t.Errorf("title = %q", first.Title)
	}
	if first.DocumentLocator != "http://arxiv.org/pdf/2610.00003v1.pdf" {
		t.Errorf("locator = %q", first.DocumentLocator)
	}
	for i, p := range papers {
		if p.PublishedOrder != i {
			t.Errorf("papers[%d].PublishedOrder = %d", i, p.PublishedOrder)
		}
	}
}

func TestFetchHonoursMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(atomFeed))
	}))
	defer srv.Close()

	papers := newTestSource(srv.URL).Fetch(context.Background(), 2)
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}
	if !strings.HasPrefix(papers[1].Title, "Second") {
		t.Errorf("order not preserved: %+v", papers)
	}
}

func TestFetchFailuresReturnEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not a feed at all"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if papers := newTestSource(srv.URL).Fetch(context.Background(), 3); len(papers) != 0 {
				t.Errorf("Fetch() = %v, want empty", papers)
			}
		})
	}
}

func TestFetchTransportErrorReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if papers := newTestSource(url).Fetch(context.Background(), 3); len(papers) != 0 {
		t.Errorf("Fetch() = %v, want empty", papers)
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Attention Is All You Need", "Attention_Is_All_You_Need"},
		{`a/b\c:d*e?f"g<h>i|j`, "a_b_c_d_e_f_g_h_i_j"},
		{"  __weird__  ", "weird"},
		{"???", "paper"},
		{strings.Repeat("x", 200), strings.Repeat("x", 120)},
	}

	for _, tt := range tests {
		if got := SafeFilename(tt.in); got != tt.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
