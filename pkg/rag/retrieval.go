package rag

import (
	"context"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/embedding"
	"ai-tutor-be/pkg/vectorindex"
)

// DefaultTopK is the number of passages fetched per query when the caller
// does not override it.
const DefaultTopK = 3

// Retrieval is the outcome of evidence selection. Degraded is set when the
// index was unreachable and generation proceeds without evidence; callers
// must not treat a degraded result as an authoritative "nothing relevant".
type Retrieval struct {
	Documents []RetrievedDocument
	Degraded  bool
}

// Retriever decides, per request, whether to bypass search entirely
// (pinned text) or perform embedding + index lookup.
type Retriever struct {
	provider embedding.Provider
	index    vectorindex.Index
	logger   logger.ILogger
}

func NewRetriever(provider embedding.Provider, index vectorindex.Index, log logger.ILogger) *Retriever {
	return &Retriever{
		provider: provider,
		index:    index,
		logger:   log,
	}
}

// Retrieve returns the evidence documents for a query, ordered by descending
// score. Pinned text is a hard override: exactly one synthetic document with
// score 1.0, no embedding or index call, regardless of index availability.
func (r *Retriever) Retrieve(ctx context.Context, query string, pinnedText string, k int) (Retrieval, error) {
	if pinnedText != "" {
		return Retrieval{
			Documents: []RetrievedDocument{
				{
					Content: pinnedText,
					Score:   1.0,
					Section: SectionSelectedText,
					Metadata: map[string]string{
						"source": "user_selection",
					},
				},
			},
		}, nil
	}

	if k <= 0 {
		k = DefaultTopK
	}

	vector, err := r.provider.Embed(ctx, query)
	if err != nil {
		// Embedding failure is fatal: without pinned text there is no other
		// way to select evidence, and skipping silently would be worse.
		return Retrieval{}, &PipelineError{Stage: StageEmbedding, Err: err}
	}

	hits, err := r.index.Search(ctx, vector, k)
	if err != nil {
		// An unreachable index degrades to evidence-free generation rather
		// than failing the whole request.
		r.logger.Warn("rag", "vector index unavailable, generating without evidence", map[string]interface{}{
			"error": err.Error(),
		})
		return Retrieval{Degraded: true}, nil
	}

	documents := make([]RetrievedDocument, len(hits))
	for i, hit := range hits {
		documents[i] = RetrievedDocument{
			Content:  hit.Payload.Content,
			Score:    hit.Score,
			Section:  hit.Payload.Section,
			Metadata: hit.Payload.Metadata,
		}
	}
	return Retrieval{Documents: documents}, nil
}
