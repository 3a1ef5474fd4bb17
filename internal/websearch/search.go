// Package websearch is the web-search collaborator boundary.
package websearch

import "context"

// Result is one raw search hit.
type Result struct {
	Text string
	URL  string
}

// Searcher runs a web search for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
