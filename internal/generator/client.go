package generator

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client generates images through the OpenAI images API. The backend is
// an opaque collaborator: a prompt goes in, raw image bytes come out,
// and any failure means no artifact was produced. Nothing is retried.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates an image generation client. baseURL may be empty to
// use the public OpenAI endpoint; setting it allows pointing at an
// API-compatible local server.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateImage asks the backend for a single image and returns the raw
// PNG bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("image API returned no data")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image API returned empty payload")
	}

	return data, nil
}
