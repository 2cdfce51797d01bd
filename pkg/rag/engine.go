package rag

import (
	"context"
	"fmt"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/embedding"
	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/google/uuid"
)

// Config carries the fixed sampling constants. They are configuration,
// never per-request inputs. Temperature is a pointer so that an explicit 0
// (greedy decoding) is distinguishable from unset.
type Config struct {
	TopK            int
	Temperature     *float64
	MaxAnswerTokens int
}

func (c *Config) applyDefaults() {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.Temperature == nil {
		temperature := 0.7
		c.Temperature = &temperature
	}
	if c.MaxAnswerTokens <= 0 {
		c.MaxAnswerTokens = 1000
	}
}

// Engine sequences retrieval, context assembly, completion and persistence.
// It is the unit of failure containment: retrieval-index and persistence
// failures degrade, embedding and completion failures abort.
type Engine struct {
	retriever  *Retriever
	builder    *ContextBuilder
	completion llm.Provider
	store      TurnStore
	logger     logger.ILogger
	cfg        Config
}

// NewEngine wires the pipeline. It rejects an embedding provider whose
// output dimension differs from the index's configured dimension: the pair
// would not fail loudly at query time, it would silently return garbage
// similarity scores.
func NewEngine(
	provider embedding.Provider,
	index vectorindex.Index,
	completion llm.Provider,
	store TurnStore,
	log logger.ILogger,
	cfg Config,
) (*Engine, error) {
	if provider.Dimension() != index.Dimension() {
		return nil, fmt.Errorf(
			"embedding provider dimension %d does not match vector index dimension %d",
			provider.Dimension(), index.Dimension(),
		)
	}
	cfg.applyDefaults()

	return &Engine{
		retriever:  NewRetriever(provider, index, log),
		builder:    NewContextBuilder(store),
		completion: completion,
		store:      store,
		logger:     log,
		cfg:        cfg,
	}, nil
}

type GenerateInput struct {
	UserId     uuid.UUID
	SessionId  uuid.UUID
	Query      string
	PinnedText string
	Profile    *Profile
}

type GenerateResult struct {
	Answer     string
	Sources    []RetrievedDocument
	TokensUsed int
	// Degraded reports that the vector index was unreachable and the answer
	// was generated without retrieved evidence.
	Degraded bool
}

// Generate runs the pipeline once. No step is retried. Persistence failures
// are logged and swallowed: a generated answer is returned to the caller even
// when the history write fails.
func (e *Engine) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	// 1. Select evidence.
	retrieval, err := e.retriever.Retrieve(ctx, in.Query, in.PinnedText, e.cfg.TopK)
	if err != nil {
		return nil, err
	}

	// 2. Assemble the bounded context.
	messages, err := e.builder.Build(ctx, in.SessionId, in.Query, in.PinnedText, in.Profile, retrieval.Documents)
	if err != nil {
		return nil, err
	}

	// 3. Complete.
	completion, err := e.completion.Chat(ctx, messages,
		llm.WithTemperature(*e.cfg.Temperature),
		llm.WithMaxTokens(e.cfg.MaxAnswerTokens),
	)
	if err != nil {
		return nil, &PipelineError{Stage: StageCompletion, Err: err}
	}

	// 4. Persist both turns, user first. The store absorbs write failures;
	// the response path does not.
	if err := e.store.AppendTurn(ctx, in.UserId, in.SessionId, RoleUser, in.Query, nil); err != nil {
		e.logger.Error("rag", "failed to persist user turn", map[string]interface{}{
			"session_id": in.SessionId.String(),
			"error":      err.Error(),
		})
	} else if err := e.store.AppendTurn(ctx, in.UserId, in.SessionId, RoleAssistant, completion.Content, nil); err != nil {
		e.logger.Error("rag", "failed to persist assistant turn", map[string]interface{}{
			"session_id": in.SessionId.String(),
			"error":      err.Error(),
		})
	}

	sources := retrieval.Documents
	if sources == nil {
		sources = []RetrievedDocument{}
	}

	return &GenerateResult{
		Answer:     completion.Content,
		Sources:    sources,
		TokensUsed: completion.TokensUsed,
		Degraded:   retrieval.Degraded,
	}, nil
}
