package main

import (
	"fmt"
	"os"
	"path/filepath"

	emotion "github.com/Krtindandu/emotisecure-login"
	"github.com/Krtindandu/emotisecure-login/adapters"
	"github.com/Krtindandu/emotisecure-login/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	backend     string
	model       string
	gatewayURL  string
	pipelineURL string
	noHistory   bool
	withCache   bool
)

func main() {
	// Optional .env for API keys and service addresses
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	defaultDB := filepath.Join(home, ".emotisecure", "history.db")

	rootCmd := &cobra.Command{
		Use:   "emotisecure",
		Short: "Emotion analysis over text and camera frames",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "history database path")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "pipeline", "classifier backend (pipeline or gateway)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "override the backend's default model")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway-url", "", "base URL of the gateway endpoint")
	rootCmd.PersistentFlags().StringVar(&pipelineURL, "pipeline-url", "", "base URL of the local inference sidecar")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "skip persisting results")
	rootCmd.PersistentFlags().BoolVar(&withCache, "cache", false, "cache text classifications in the vector store")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildAnalyzer wires the configured backend, optional cache, and history
// store into an Analyzer. The returned cleanup must run before exit.
func buildAnalyzer() (*emotion.Analyzer, func(), error) {
	var (
		text    emotion.TextClassifier
		image   emotion.ImageClassifier
		labels  *emotion.LabelTable
		cleanup []func()
	)

	switch backend {
	case "gateway":
		gw, err := adapters.NewGatewayAdapter(nil, gatewayURL, model, nil)
		if err != nil {
			return nil, nil, err
		}
		text, image = gw, gw
		labels = emotion.GatewayLabels()
	case "pipeline":
		p := adapters.NewPipelineAdapter(optional(pipelineURL), model)
		text, image = p, p
		labels = emotion.PipelineLabels()
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}

	if withCache {
		cached, err := wrapWithCache(text)
		if err != nil {
			fmt.Printf("(cache disabled: %v)\n", err)
		} else {
			text = cached
			cleanup = append(cleanup, func() { cached.Close() })
		}
	}

	var history emotion.HistoryStore
	if !noHistory {
		s, err := openStore()
		if err != nil {
			return nil, nil, err
		}
		history = s
		cleanup = append(cleanup, func() { s.Close() })
	}

	analyzer, err := emotion.NewAnalyzer(emotion.Config{
		TextClassifier:  text,
		ImageClassifier: image,
		TextLabels:      labels,
		ImageLabels:     labels,
		History:         history,
	})
	if err != nil {
		return nil, nil, err
	}

	return analyzer, func() {
		analyzer.Close()
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}, nil
}

// wrapWithCache puts the Voyage+Pinecone vector cache in front of a text
// classifier
func wrapWithCache(inner emotion.TextClassifier) (*emotion.CachingTextClassifier, error) {
	embedding, err := adapters.NewVoyageEmbeddingAdapter(nil)
	if err != nil {
		return nil, err
	}

	vectors, err := adapters.NewPineconeVectorAdapter(nil, nil, "emotion-text")
	if err != nil {
		return nil, err
	}

	return emotion.NewCachingTextClassifier(inner, embedding, vectors, 0)
}

func openStore() (*store.Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(dbPath)
}

// optional turns an empty flag value into nil so env fallbacks apply
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// printResult renders one analysis result to stdout
func printResult(heading string, data *emotion.EmotionData) {
	fmt.Printf("%s\n", heading)
	fmt.Printf("  Dominant: %s (confidence %.2f)\n", data.DominantEmotion, data.Confidence)
	for _, e := range data.Emotions {
		if e.Score == 0 {
			continue
		}
		fmt.Printf("  %-10s %.3f  %s\n", e.Name, e.Score, e.Intensity)
	}
	if len(data.MixedEmotions) > 1 {
		fmt.Printf("  Mixed: %v\n", data.MixedEmotions)
	}
	fmt.Printf("  %s\n", data.AnalysisSummary)
}
