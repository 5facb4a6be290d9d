package embeddings

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CLIPImage generates image embeddings through an OpenAI-compatible
// embeddings endpoint serving a CLIP-family model (infinity, LocalAI, and
// similar servers accept images as base64 data URLs in the input field).
type CLIPImage struct {
	client openai.Client
	model  string
}

// NewCLIPImage creates an image embedder against the given endpoint.
func NewCLIPImage(baseURL, token, model string) (*CLIPImage, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("image embedding endpoint required")
	}

	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if token != "" {
		opts = append(opts, option.WithAPIKey(token))
	}

	return &CLIPImage{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (e *CLIPImage) EmbedImage(ctx context.Context, img image.Image) (Vector, error) {
	payload, err := encodeDataURL(img)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(payload)},
	})
	if err != nil {
		return nil, fmt.Errorf("image embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("image embedding: empty response")
	}

	vec := make(Vector, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

func encodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
