package chatgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/dskvich/poml-examples/pkg/config"
	"github.com/dskvich/poml-examples/pkg/domain"
	"github.com/dskvich/poml-examples/pkg/imagefile"
)

type visionClient struct {
	token     string
	model     string
	maxTokens int
	url       string
	hc        *http.Client
}

// NewVisionClient builds a client for cfg. A nil hc gets a client bounded by cfg.HTTPTimeout.
func NewVisionClient(cfg config.OpenAI, hc *http.Client) (*visionClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &visionClient{
		token:     cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		url:       cfg.Endpoint,
		hc:        hc,
	}, nil
}

// Describe sends prompt and image as one user message and returns the decoded JSON body.
func (c *visionClient) Describe(ctx context.Context, prompt string, image imagefile.Encoded) (domain.CompletionResponse, error) {
	body, err := c.prepareRequest(prompt, image)
	if err != nil {
		return domain.CompletionResponse{}, &domain.RequestError{Err: err}
	}

	slog.DebugContext(ctx, "Sending chat completion request", "url", c.url, "model", c.model, "bytes", len(body))

	resp, err := c.sendRequest(ctx, body)
	if err != nil {
		return domain.CompletionResponse{}, &domain.RequestError{Err: err}
	}

	return resp, nil
}

func (c *visionClient) prepareRequest(prompt string, image imagefile.Encoded) ([]byte, error) {
	chatRequest := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: image.DataURI()}},
				},
			},
		},
		MaxTokens: c.maxTokens,
	}

	body, err := json.Marshal(chatRequest)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	return body, nil
}

func (c *visionClient) sendRequest(ctx context.Context, body []byte) (domain.CompletionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return domain.CompletionResponse{}, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.CompletionResponse{}, fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.CompletionResponse{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "Unexpected status code", "status", resp.StatusCode)
	}

	completion, err := domain.ParseCompletionResponse(respBody)
	if err != nil {
		return domain.CompletionResponse{}, fmt.Errorf("status %d: %w", resp.StatusCode, err)
	}

	return completion, nil
}
