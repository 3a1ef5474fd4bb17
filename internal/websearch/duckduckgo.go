package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.duckduckgo.com/"
	maxResults     = 2
	maxURLLen      = 100
	maxTextLen     = 300
)

// DuckDuckGo queries the DuckDuckGo instant-answer API. The abstract
// answer is taken first, then related topics, capped at two results.
type DuckDuckGo struct {
	baseURL    string
	httpClient *http.Client

	// now supplies the cache-busting timestamp parameter.
	now func() time.Time
}

// NewDuckDuckGo creates a DuckDuckGo searcher. baseURL defaults to the
// public instant-answer endpoint when empty.
func NewDuckDuckGo(baseURL string) *DuckDuckGo {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DuckDuckGo{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

type instantAnswer struct {
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("t", strconv.FormatInt(d.now().Unix(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	var results []Result
	if answer.AbstractText != "" && answer.AbstractURL != "" {
		results = append(results, Result{Text: answer.AbstractText, URL: answer.AbstractURL})
	}
	for _, topic := range answer.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text != "" && topic.FirstURL != "" {
			results = append(results, Result{Text: topic.Text, URL: topic.FirstURL})
		}
	}

	for i := range results {
		results[i] = clean(results[i])
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// clean truncates over-long URLs and texts.
func clean(r Result) Result {
	if len(r.URL) > maxURLLen {
		r.URL = r.URL[:maxURLLen-3] + "..."
	}
	if len(r.Text) > maxTextLen {
		r.Text = r.Text[:maxTextLen-3] + "..."
	}
	return r
}
