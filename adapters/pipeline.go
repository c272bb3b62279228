package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync"

	emotion "github.com/Krtindandu/emotisecure-login"
	"github.com/Krtindandu/emotisecure-login/clients/pipeline"
)

// pipelineClient is the slice of the sidecar client the adapter needs
type pipelineClient interface {
	Load(ctx context.Context) error
	ClassifyText(ctx context.Context, text string) ([]pipeline.LabelScore, error)
	ClassifyImage(ctx context.Context, frame []byte) ([]pipeline.LabelScore, error)
}

// loadAttempt is one in-flight pipeline load. Concurrent callers share the
// attempt instead of triggering duplicate loads.
type loadAttempt struct {
	done chan struct{}
	err  error
}

// PipelineAdapter implements TextClassifier and ImageClassifier against the
// local inference sidecar. The pipeline weights are loaded lazily, at most
// once per process; a failed load clears the memo so a manual retry can start
// a fresh load.
type PipelineAdapter struct {
	client pipelineClient

	mu       sync.Mutex
	loaded   bool
	inflight *loadAttempt
}

// NewPipelineAdapter creates a new adapter for the local pipeline. The
// sidecar address falls back to the PIPELINE_URL environment variable, then
// the client default.
func NewPipelineAdapter(baseURL *string, model string) *PipelineAdapter {
	url := ""
	if resolved, err := loadEnvVar(baseURL, "PIPELINE_URL"); err == nil {
		url = *resolved
	}

	return &PipelineAdapter{
		client: pipeline.NewClient(url, model),
	}
}

// ClassifyText implements TextClassifier
func (a *PipelineAdapter) ClassifyText(ctx context.Context, text string) (emotion.RawClassification, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	scores, err := a.client.ClassifyText(ctx, text)
	if err != nil {
		return nil, wrapPipelineError(err)
	}

	return convertScores(scores), nil
}

// ClassifyImage implements ImageClassifier
func (a *PipelineAdapter) ClassifyImage(ctx context.Context, frame []byte) (emotion.RawClassification, error) {
	if err := a.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	scores, err := a.client.ClassifyImage(ctx, frame)
	if err != nil {
		return nil, wrapPipelineError(err)
	}

	return convertScores(scores), nil
}

// ensureLoaded loads the pipeline on first use. Concurrent callers collapse
// into a single in-flight load: the first caller triggers it, the rest await
// the same attempt and observe its outcome.
func (a *PipelineAdapter) ensureLoaded(ctx context.Context) error {
	a.mu.Lock()
	if a.loaded {
		a.mu.Unlock()
		return nil
	}

	if attempt := a.inflight; attempt != nil {
		a.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-attempt.done:
		}
		if attempt.err != nil {
			return fmt.Errorf("%w: %v", emotion.ErrModelUnavailable, attempt.err)
		}
		return nil
	}

	attempt := &loadAttempt{done: make(chan struct{})}
	a.inflight = attempt
	a.mu.Unlock()

	attempt.err = a.client.Load(ctx)

	a.mu.Lock()
	a.loaded = attempt.err == nil
	a.inflight = nil
	a.mu.Unlock()
	close(attempt.done)

	if attempt.err != nil {
		return fmt.Errorf("%w: %v", emotion.ErrModelUnavailable, attempt.err)
	}
	return nil
}

// wrapPipelineError maps sidecar failures onto the core error taxonomy:
// unparseable payloads are invalid responses, everything else (network
// failures, sidecar error statuses) means the model is unavailable.
func wrapPipelineError(err error) error {
	if errors.Is(err, pipeline.ErrDecode) {
		return fmt.Errorf("%w: %v", emotion.ErrInvalidResponse, err)
	}
	return fmt.Errorf("%w: %v", emotion.ErrModelUnavailable, err)
}

func convertScores(scores []pipeline.LabelScore) emotion.RawClassification {
	raw := make(emotion.RawClassification, 0, len(scores))
	for _, s := range scores {
		raw = append(raw, emotion.LabelScore{Label: s.Label, Score: s.Score})
	}
	return raw
}
