package embeddings

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaText generates text embeddings through a local Ollama instance.
type OllamaText struct {
	client     *api.Client
	model      string
	maxChars   int
	maxRetries int
	timeout    time.Duration
}

// NewOllamaText creates an Ollama text embedder against the given host URL.
func NewOllamaText(host, model string, maxChars int) (*OllamaText, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
	}

	return &OllamaText{
		client:     api.NewClient(base, http.DefaultClient),
		model:      model,
		maxChars:   maxChars,
		maxRetries: 3,
		timeout:    30 * time.Second,
	}, nil
}

// EmbedText embeds the text, retrying transient failures with linear backoff.
func (e *OllamaText) EmbedText(ctx context.Context, text string) (Vector, error) {
	text = Truncate(text, e.maxChars)

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		vec, err := e.embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ollama embedding after %d retries: %w", e.maxRetries, lastErr)
}

func (e *OllamaText) embed(ctx context.Context, text string) (Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, err
	}

	vec := make(Vector, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
