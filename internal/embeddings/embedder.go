package embeddings

import "context"

// Embedder turns texts into fixed-length embedding vectors.
type Embedder interface {
	// Embed generates one vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the identifier of the embedding model.
	Name() string
}
