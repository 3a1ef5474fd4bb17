package similarity

import (
	"context"
	"math"
	"strings"

	"github.com/ziadkadry99/docchat/internal/embeddings"
)

// Method identifies which computation produced a score.
type Method string

const (
	// MethodEmbedding is cosine similarity over embedding vectors.
	MethodEmbedding Method = "embedding"
	// MethodLexical is the Jaccard token-overlap fallback, used when the
	// embedding service is unavailable.
	MethodLexical Method = "lexical"
)

// Score is a similarity result tagged with the method that produced it,
// so callers and tests can tell the degraded path from the primary one.
type Score struct {
	Value  float64
	Method Method
}

// Scorer computes text similarity. The primary path embeds both texts
// and takes their cosine similarity; if the embedder fails, it degrades
// to lexical token overlap and never returns an error.
//
// Cosine values are reported unclamped: arbitrary embeddings can yield
// negative similarity, and callers apply their own thresholds.
type Scorer struct {
	embedder embeddings.Embedder
}

// NewScorer creates a Scorer backed by the given embedder.
func NewScorer(embedder embeddings.Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score computes the similarity between two texts.
func (s *Scorer) Score(ctx context.Context, a, b string) Score {
	if s.embedder != nil {
		vecs, err := s.embedder.Embed(ctx, []string{a, b})
		if err == nil && len(vecs) == 2 {
			return Score{Value: Cosine(vecs[0], vecs[1]), Method: MethodEmbedding}
		}
	}
	return Score{Value: Jaccard(a, b), Method: MethodLexical}
}

// Cosine returns the cosine similarity of two vectors, or 0.0 exactly
// when either magnitude is zero.
func Cosine(a, b []float32) float64 {
	var dot, magA, magB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Jaccard returns the token-set overlap of two texts: intersection size
// over union size of their lower-cased whitespace tokens. Returns 0.0
// when the union is empty.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	union := len(setB)
	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = struct{}{}
	}
	return set
}
