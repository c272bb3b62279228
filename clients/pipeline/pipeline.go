// Package pipeline is a client for the local inference sidecar, which serves
// text and image emotion-classification pipelines over HTTP.
package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "http://localhost:8090"

// LabelScore is one raw (label, score) pair from the pipeline
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyResponse is the body returned by the classification endpoints
type ClassifyResponse struct {
	Emotions []LabelScore `json:"emotions"`
}

type textRequest struct {
	Text string `json:"text"`
}

type imageRequest struct {
	// Image is the base64-encoded still frame
	Image string `json:"image"`
}

type loadRequest struct {
	Model string `json:"model,omitempty"`
}

// Client talks to the local inference sidecar
type Client struct {
	baseURL string
	model   string
	c       *http.Client
}

// NewClient creates a pipeline client. An empty baseURL falls back to the
// default sidecar address; model selects a non-default pipeline checkpoint.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		model:   model,
		c:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Load asks the sidecar to load the pipeline weights. The sidecar dedupes
// repeat loads itself, but a call can still take a long time on cold start.
func (p *Client) Load(ctx context.Context) error {
	_, err := p.post(ctx, "/load", loadRequest{Model: p.model})
	if err != nil {
		return fmt.Errorf("load pipeline: %w", err)
	}
	return nil
}

// ClassifyText runs the text pipeline on the given input
func (p *Client) ClassifyText(ctx context.Context, text string) ([]LabelScore, error) {
	body, err := p.post(ctx, "/classify", textRequest{Text: text})
	if err != nil {
		return nil, err
	}
	return decodeEmotions(body)
}

// ClassifyImage runs the image pipeline on a rasterized still frame
func (p *Client) ClassifyImage(ctx context.Context, frame []byte) ([]LabelScore, error) {
	body, err := p.post(ctx, "/classify-image", imageRequest{
		Image: base64.StdEncoding.EncodeToString(frame),
	})
	if err != nil {
		return nil, err
	}
	return decodeEmotions(body)
}

func (p *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pipeline encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pipeline read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// ErrDecode marks a response body that could not be parsed
var ErrDecode = errors.New("pipeline decode")

func decodeEmotions(body []byte) ([]LabelScore, error) {
	var out ClassifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out.Emotions, nil
}

// StatusError is a non-200 response from the sidecar
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pipeline %d: %s", e.Status, e.Body)
}
