package emotion

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Analyzer runs emotion analyses: classify, normalize, aggregate, and
// optionally persist the result as history.
type Analyzer struct {
	text        TextClassifier
	image       ImageClassifier
	textLabels  *LabelTable
	imageLabels *LabelTable
	history     HistoryStore

	// Metrics tracking
	textAnalyses  int
	imageAnalyses int
	historyWrites int
	metricsLock   sync.RWMutex

	// Background task tracking for graceful shutdown
	backgroundTasks sync.WaitGroup
	shutdownOnce    sync.Once
	closing         bool
	closeLock       sync.RWMutex
}

// NewAnalyzer creates a new Analyzer with the given configuration
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	cfg.applyDefaults()

	if cfg.TextClassifier == nil && cfg.ImageClassifier == nil {
		return nil, fmt.Errorf("at least one classifier must be configured")
	}

	return &Analyzer{
		text:        cfg.TextClassifier,
		image:       cfg.ImageClassifier,
		textLabels:  cfg.TextLabels,
		imageLabels: cfg.ImageLabels,
		history:     cfg.History,
	}, nil
}

// AnalyzeText classifies the given text and returns the aggregated result
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*EmotionData, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}

	data, err := a.analyzeText(ctx, text)
	if err != nil {
		return nil, err
	}

	a.recordAnalysis(AnalysisText)
	a.persistInBackground(&Record{
		AnalysisType: AnalysisText,
		InputText:    text,
		Result:       *data,
	})

	return data, nil
}

// AnalyzeImage classifies a rasterized still frame and returns the
// aggregated result
func (a *Analyzer) AnalyzeImage(ctx context.Context, frame []byte) (*EmotionData, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}

	data, err := a.analyzeImage(ctx, frame)
	if err != nil {
		return nil, err
	}

	a.recordAnalysis(AnalysisVideo)
	a.persistInBackground(&Record{
		AnalysisType: AnalysisVideo,
		Result:       *data,
	})

	return data, nil
}

// AnalyzeCombined runs text and image analysis concurrently. The modalities
// are independent: a failure on one side never cancels the other, and
// whichever side succeeded is reported. The returned error is non-nil only
// when both sides failed.
func (a *Analyzer) AnalyzeCombined(ctx context.Context, text string, frame []byte) (*CombinedResult, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}

	var res CombinedResult
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		res.Text, res.TextErr = a.analyzeText(ctx, text)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		res.Image, res.ImageErr = a.analyzeImage(ctx, frame)
	}()

	wg.Wait()

	if res.TextErr != nil && res.ImageErr != nil {
		return &res, fmt.Errorf("combined analysis failed: text: %v; image: %v", res.TextErr, res.ImageErr)
	}

	if res.Text != nil {
		a.recordAnalysis(AnalysisText)
		a.persistInBackground(&Record{
			AnalysisType: AnalysisCombined,
			InputText:    text,
			Result:       *res.Text,
		})
	}
	if res.Image != nil {
		a.recordAnalysis(AnalysisVideo)
		a.persistInBackground(&Record{
			AnalysisType: AnalysisCombined,
			Result:       *res.Image,
		})
	}

	return &res, nil
}

// analyzeText is the single-modality text pipeline: classify, normalize,
// aggregate. No persistence or metrics here so combined mode can reuse it.
func (a *Analyzer) analyzeText(ctx context.Context, text string) (*EmotionData, error) {
	if a.text == nil {
		return nil, fmt.Errorf("no text classifier configured")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("cannot analyze empty text")
	}

	raw, err := a.text.ClassifyText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to classify text: %w", err)
	}

	vec := a.textLabels.Normalize(raw)
	data := Aggregate(a.textLabels, vec, AnalysisText)
	return &data, nil
}

// analyzeImage is the single-modality image pipeline
func (a *Analyzer) analyzeImage(ctx context.Context, frame []byte) (*EmotionData, error) {
	if a.image == nil {
		return nil, fmt.Errorf("no image classifier configured")
	}

	if len(frame) == 0 {
		return nil, fmt.Errorf("cannot analyze empty frame")
	}

	raw, err := a.image.ClassifyImage(ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("failed to classify image: %w", err)
	}

	vec := a.imageLabels.Normalize(raw)
	data := Aggregate(a.imageLabels, vec, AnalysisVideo)
	return &data, nil
}

// persistInBackground hands a record to the history store without blocking
// the caller. Failures are logged, never surfaced: history is best-effort.
func (a *Analyzer) persistInBackground(rec *Record) {
	if a.history == nil {
		return
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now()

	a.backgroundTasks.Add(1)
	go func() {
		defer a.backgroundTasks.Done()
		if err := a.history.Insert(context.Background(), rec); err != nil {
			log.Printf("Error: failed to persist analysis record: %v", err)
			return
		}
		a.recordHistoryWrite()
	}()
}

// Close gracefully shuts down the analyzer, waiting for pending history
// writes to complete. It's safe to call Close multiple times.
func (a *Analyzer) Close() error {
	a.shutdownOnce.Do(func() {
		a.closeLock.Lock()
		a.closing = true
		a.closeLock.Unlock()

		a.backgroundTasks.Wait()
	})

	return nil
}

// GetMetrics returns current analysis metrics
func (a *Analyzer) GetMetrics() Metrics {
	a.metricsLock.RLock()
	defer a.metricsLock.RUnlock()

	return Metrics{
		TextAnalyses:  a.textAnalyses,
		ImageAnalyses: a.imageAnalyses,
		HistoryWrites: a.historyWrites,
	}
}

func (a *Analyzer) checkOpen() error {
	a.closeLock.RLock()
	defer a.closeLock.RUnlock()
	if a.closing {
		return fmt.Errorf("analyzer is shutting down")
	}
	return nil
}

func (a *Analyzer) recordAnalysis(t AnalysisType) {
	a.metricsLock.Lock()
	defer a.metricsLock.Unlock()
	switch t {
	case AnalysisText:
		a.textAnalyses++
	case AnalysisVideo:
		a.imageAnalyses++
	}
}

func (a *Analyzer) recordHistoryWrite() {
	a.metricsLock.Lock()
	defer a.metricsLock.Unlock()
	a.historyWrites++
}
