package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"
)

const localEmbeddingDimension = 384 // all-minilm

// LocalProvider implements Provider for a locally hosted encoder runtime
// (Ollama-compatible API, e.g. all-minilm). The runtime keeps the model
// resident in memory; loading it is expensive, so the first call triggers
// a one-time warm-up request and every later call reuses the loaded model.
// The provider is constructed once by the composition root and shared.
type LocalProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client

	warmup    sync.Once
	warmupErr error
}

func NewLocalProvider(baseURL string, model string) *LocalProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "all-minilm"
	}
	return &LocalProvider{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type localEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type localEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *LocalProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	// Load the model into the runtime exactly once, even under
	// concurrent first use.
	p.warmup.Do(func() {
		p.warmupErr = p.loadModel(ctx)
	})
	if p.warmupErr != nil {
		return nil, fmt.Errorf("local embedding model unavailable: %w", p.warmupErr)
	}

	values, err := p.embed(ctx, text)
	if err != nil {
		return nil, err
	}

	// Cosine distance in pgvector requires normalized vectors (magnitude = 1).
	return normalizeVector(values), nil
}

func (p *LocalProvider) Dimension() int {
	return localEmbeddingDimension
}

// loadModel issues an empty-prompt embedding request, which forces the
// runtime to pull the model into memory without producing useful output.
func (p *LocalProvider) loadModel(ctx context.Context) error {
	_, err := p.embed(ctx, " ")
	return err
}

func (p *LocalProvider) embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := localEmbeddingRequest{
		Model:  p.Model,
		Prompt: text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := p.BaseURL + "/api/embeddings"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("local embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("local embedding error: status %d, body %s", resp.StatusCode, string(bodyBytes))
	}

	var localResp localEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &localResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	values := make([]float32, len(localResp.Embedding))
	for i, v := range localResp.Embedding {
		values[i] = float32(v)
	}
	return values, nil
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
