// Package gateway is a minimal client for an OpenAI-compatible multimodal
// chat completions endpoint.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/Krtindandu/emotisecure-login/internal/retry"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client talks to the chat completions endpoint with retry logic
type Client struct {
	APIKey      string
	BaseURL     string
	HTTPClient  *http.Client
	RetryConfig retry.Config
}

// NewClient creates a new gateway client. An empty baseURL falls back to the
// default endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		HTTPClient:  http.DefaultClient,
		RetryConfig: retry.DefaultConfig(),
	}
}

// ChatCompletion sends a chat completion request with retry logic
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	url := c.BaseURL + "/chat/completions"

	bodyBytes, err := c.runRetryableRequest(ctx, url, req)
	if err != nil {
		return nil, err
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, &ChatCompletionError{
			Message: fmt.Sprintf("failed to parse chat completion response: %v", err),
			RawBody: json.RawMessage(bodyBytes),
		}
	}

	return &chatResp, nil
}

// isRetryableError determines if an error should trigger a retry
func (c *Client) isRetryableError(err error, statusCode int, responseBody []byte) bool {
	// Retry on network errors, which carry no status code
	if err != nil && statusCode == 0 {
		return true
	}

	// Retry on server errors (5xx)
	if statusCode >= 500 {
		return true
	}

	// Retry on rate limiting (429)
	if statusCode == 429 {
		return true
	}

	return false
}

// runRetryableRequest executes an HTTP request with retry logic
func (c *Client) runRetryableRequest(ctx context.Context, url string, requestBody any) ([]byte, error) {
	opts := retry.Options{
		Config:       c.RetryConfig,
		ErrorChecker: c.isRetryableError,
		Logger:       log.Printf,
		APIName:      "gateway chat",
	}

	return retry.Execute(ctx, opts, func(attempt int) ([]byte, int, error) {
		body, err := json.Marshal(requestBody)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal chat request: %w", err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create HTTP request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			return nil, 0, err
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, fmt.Errorf("failed to read chat response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return bodyBytes, resp.StatusCode, &ChatCompletionError{
				Message:    fmt.Sprintf("gateway chat API error %d", resp.StatusCode),
				StatusCode: resp.StatusCode,
				RawBody:    json.RawMessage(bodyBytes),
			}
		}

		return bodyBytes, resp.StatusCode, nil
	})
}
