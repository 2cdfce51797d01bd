package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalServer(t *testing.T, embedding []float64, requestCount *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requestCount, 1)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req localEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)

		json.NewEncoder(w).Encode(localEmbeddingResponse{Embedding: embedding})
	}))
}

func TestLocalProviderEmbedNormalizes(t *testing.T) {
	var requests int64
	server := newLocalServer(t, []float64{3, 4}, &requests)
	defer server.Close()

	provider := NewLocalProvider(server.URL, "all-minilm")
	vector, err := provider.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, vector, 2)

	// {3,4} has magnitude 5.
	assert.InDelta(t, 0.6, float64(vector[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(vector[1]), 1e-6)

	var magnitude float64
	for _, v := range vector {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-6)
}

func TestLocalProviderWarmsUpOnce(t *testing.T) {
	var requests int64
	server := newLocalServer(t, []float64{1, 0}, &requests)
	defer server.Close()

	provider := NewLocalProvider(server.URL, "all-minilm")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := provider.Embed(context.Background(), "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 8 embed requests plus exactly one warm-up request.
	assert.Equal(t, int64(9), atomic.LoadInt64(&requests))
}

func TestLocalProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, "missing-model")
	_, err := provider.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local embedding model unavailable")
}

func TestLocalProviderDimension(t *testing.T) {
	provider := NewLocalProvider("", "")
	assert.Equal(t, 384, provider.Dimension())
	assert.Equal(t, "http://localhost:11434", provider.BaseURL)
	assert.Equal(t, "all-minilm", provider.Model)
}

func TestNormalizeVectorZero(t *testing.T) {
	vec := []float32{0, 0, 0}
	assert.Equal(t, vec, normalizeVector(vec))
}
