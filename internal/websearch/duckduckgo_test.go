package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestSearcher(handler http.HandlerFunc) (*DuckDuckGo, *httptest.Server) {
	srv := httptest.NewServer(handler)
	d := NewDuckDuckGo(srv.URL)
	return d, srv
}

func TestSearchAbstractFirst(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "capital da frança" {
			t.Errorf("unexpected query: %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("expected format=json, got %q", got)
		}
		if r.URL.Query().Get("t") == "" {
			t.Error("expected the cache-busting timestamp parameter")
		}
		w.Write([]byte(`{
			"AbstractText": "Paris é a capital da França.",
			"AbstractURL": "https://example.org/paris",
			"RelatedTopics": [
				{"Text": "França - país europeu", "FirstURL": "https://example.org/franca"},
				{"Text": "Europa", "FirstURL": "https://example.org/europa"}
			]
		}`))
	})
	defer srv.Close()

	results, err := d.Search(context.Background(), "capital da frança")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "Paris é a capital da França." || results[0].URL != "https://example.org/paris" {
		t.Errorf("abstract should come first, got %+v", results[0])
	}
	if results[1].URL != "https://example.org/franca" {
		t.Errorf("first related topic should come second, got %+v", results[1])
	}
}

func TestSearchRelatedTopicsOnly(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"AbstractText": "",
			"AbstractURL": "",
			"RelatedTopics": [
				{"Text": "tópico um", "FirstURL": "https://example.org/1"},
				{"Text": "", "FirstURL": "https://example.org/vazio"},
				{"Text": "tópico dois", "FirstURL": "https://example.org/2"}
			]
		}`))
	})
	defer srv.Close()

	results, err := d.Search(context.Background(), "qualquer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://example.org/1" || results[1].URL != "https://example.org/2" {
		t.Errorf("topics without text must be skipped, got %+v", results)
	}
}

func TestSearchEmptyAnswer(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"AbstractText": "", "AbstractURL": "", "RelatedTopics": []}`))
	})
	defer srv.Close()

	results, err := d.Search(context.Background(), "nada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestSearchHTTPError(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	if _, err := d.Search(context.Background(), "x"); err == nil {
		t.Error("expected an error on HTTP 500")
	}
}

func TestSearchMalformedJSON(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer srv.Close()

	if _, err := d.Search(context.Background(), "x"); err == nil {
		t.Error("expected an error on malformed JSON")
	}
}

func TestSearchTruncatesLongFields(t *testing.T) {
	longText := strings.Repeat("a", 400)
	longURL := "https://example.org/" + strings.Repeat("p", 200)
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"AbstractText": "` + longText + `", "AbstractURL": "` + longURL + `", "RelatedTopics": []}`))
	})
	defer srv.Close()

	results, err := d.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if len(results[0].Text) != maxTextLen || !strings.HasSuffix(results[0].Text, "...") {
		t.Errorf("text should be truncated to %d with ellipsis, got len %d", maxTextLen, len(results[0].Text))
	}
	if len(results[0].URL) != maxURLLen || !strings.HasSuffix(results[0].URL, "...") {
		t.Errorf("url should be truncated to %d with ellipsis, got len %d", maxURLLen, len(results[0].URL))
	}
}

func TestSearchContextCancellation(t *testing.T) {
	d, srv := newTestSearcher(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Search(ctx, "x"); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
