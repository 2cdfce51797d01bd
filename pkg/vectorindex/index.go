package vectorindex

import (
	"context"

	"github.com/google/uuid"
)

// Payload is the document stored alongside a vector and returned on search.
type Payload struct {
	Content  string
	Section  string
	Metadata map[string]string
}

// Hit is one ranked search result. Score is cosine similarity, higher is better.
type Hit struct {
	Id      uuid.UUID
	Score   float64
	Payload Payload
}

// Index stores (vector, payload) pairs and returns the top-k nearest payloads
// for a query vector. An index is created with a fixed vector dimension;
// vectors of any other dimension are rejected.
type Index interface {
	Upsert(ctx context.Context, id uuid.UUID, vector []float32, payload Payload) error
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
	Count(ctx context.Context) (int64, error)
	Dimension() int
}
