package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddingServer(t *testing.T, status int, body string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	var calls atomic.Int64
	srv := newEmbeddingServer(t, http.StatusOK, `{
		"object": "list",
		"data": [{"object": "embedding", "index": 0, "embedding": [0.1, 0.2, 0.3]}],
		"model": "text-embedding-3-small",
		"usage": {"prompt_tokens": 2, "total_tokens": 2}
	}`, &calls)

	embedder := NewOpenAIEmbedder(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})

	vector, err := embedder.Embed(context.Background(), "hilchos shabbos")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.3}, vector, 1e-6)
	assert.Equal(t, int64(1), calls.Load())
}

func TestOpenAIEmbedder_EmptyResponse(t *testing.T) {
	var calls atomic.Int64
	srv := newEmbeddingServer(t, http.StatusOK, `{
		"object": "list",
		"data": [],
		"model": "",
		"usage": {"prompt_tokens": 0, "total_tokens": 0}
	}`, &calls)

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := embedder.Embed(context.Background(), "query")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "embedding", provErr.Operation())
}

func TestOpenAIEmbedder_SingleAttemptOnServerError(t *testing.T) {
	var calls atomic.Int64
	srv := newEmbeddingServer(t, http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error"}}`, &calls)

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := embedder.Embed(context.Background(), "query")
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode())
}

func TestOpenAIEmbedder_RateLimited(t *testing.T) {
	var calls atomic.Int64
	srv := newEmbeddingServer(t, http.StatusTooManyRequests,
		`{"error": {"message": "slow down", "type": "rate_limit_error"}}`, &calls)

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := embedder.Embed(context.Background(), "query")
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.True(t, provErr.IsRateLimited())
}

func TestOpenAIEmbedder_DefaultModel(t *testing.T) {
	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "test-key"})
	assert.Equal(t, DefaultEmbeddingModel, embedder.Model())
}
