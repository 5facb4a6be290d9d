package embeddings

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIText generates text embeddings through the OpenAI API or any
// OpenAI-compatible endpoint.
type OpenAIText struct {
	client   openai.Client
	model    string
	maxChars int
}

// NewOpenAIText creates an OpenAI text embedder. baseURL may be empty to use
// the default API endpoint.
func NewOpenAIText(baseURL, token, model string, maxChars int) *OpenAIText {
	opts := []option.RequestOption{}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if token != "" {
		opts = append(opts, option.WithAPIKey(token))
	}

	return &OpenAIText{
		client:   openai.NewClient(opts...),
		model:    model,
		maxChars: maxChars,
	}
}

func (e *OpenAIText) EmbedText(ctx context.Context, text string) (Vector, error) {
	text = Truncate(text, e.maxChars)

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding: empty response")
	}

	vec := make(Vector, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
