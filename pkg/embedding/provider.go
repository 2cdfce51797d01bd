package embedding

import "context"

// Provider defines the interface for generating text embeddings.
// Dimension is fixed per provider and must match the vector index
// the embeddings are stored in.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
