// Package vectordb provides an ephemeral in-memory similarity index
// over document passages, backed by chromem-go.
package vectordb

import (
	"context"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/docchat/internal/embeddings"
)

const collectionName = "passages"

// Passage is one indexable slice of a document: the full content or a
// named section.
type Passage struct {
	Title   string
	Content string
}

// Match pairs a passage with its similarity to the query.
type Match struct {
	Passage    Passage
	Similarity float32
}

// Index is a throwaway per-question similarity index. It is built,
// queried once or twice, and discarded; nothing is persisted.
type Index struct {
	collection *chromem.Collection
	passages   []Passage
}

// NewIndex builds an index over the given passages using the embedder.
// Passages with empty content are skipped.
func NewIndex(ctx context.Context, embedder embeddings.Embedder, passages []Passage) (*Index, error) {
	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(collectionName, nil, toChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	idx := &Index{collection: col}
	var docs []chromem.Document
	for _, p := range passages {
		if p.Content == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:       strconv.Itoa(len(idx.passages)),
			Content:  p.Content,
			Metadata: map[string]string{"title": p.Title},
		})
		idx.passages = append(idx.passages, p)
	}
	if len(docs) == 0 {
		return idx, nil
	}

	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("add passages: %w", err)
	}
	return idx, nil
}

// Query returns the top-k passages most similar to the query text.
func (idx *Index) Query(ctx context.Context, query string, k int) ([]Match, error) {
	count := idx.collection.Count()
	if count == 0 {
		return nil, nil
	}
	// chromem-go requires nResults <= collection size.
	if k > count {
		k = count
	}

	results, err := idx.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		n, _ := strconv.Atoi(r.ID)
		matches[i] = Match{Passage: idx.passages[n], Similarity: r.Similarity}
	}
	return matches, nil
}

// Count returns the number of indexed passages.
func (idx *Index) Count() int {
	return idx.collection.Count()
}

// toChromemFunc adapts an Embedder to chromem's single-text function.
func toChromemFunc(e embeddings.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vecs, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) == 0 {
			return nil, fmt.Errorf("embedder returned no vector")
		}
		return vecs[0], nil
	}
}
