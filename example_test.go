package emotion_test

import (
	"context"
	"fmt"
	"log"

	emotion "github.com/Krtindandu/emotisecure-login"
	"github.com/Krtindandu/emotisecure-login/adapters"
	"github.com/Krtindandu/emotisecure-login/store"
)

// Example shows basic usage against the local inference pipeline
func Example_basic() {
	pipeline := adapters.NewPipelineAdapter(nil, "")

	analyzer, err := emotion.NewAnalyzer(emotion.Config{
		TextClassifier:  pipeline,
		ImageClassifier: pipeline,
	})
	if err != nil {
		log.Fatal(err)
	}

	data, err := analyzer.AnalyzeText(context.Background(), "This is the best day of my life!")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Dominant: %s\n", data.DominantEmotion)
	fmt.Printf("Confidence: %.2f\n", data.Confidence)
	fmt.Printf("Summary: %s\n", data.AnalysisSummary)

	if err := analyzer.Close(); err != nil {
		log.Fatal(err)
	}
}

// Example shows the gateway backend with a cached text path and history
func Example_customConfig() {
	gateway, err := adapters.NewGatewayAdapter(nil, "", "", nil)
	if err != nil {
		log.Fatal(err)
	}

	embedding, err := adapters.NewVoyageEmbeddingAdapter(nil)
	if err != nil {
		log.Fatal(err)
	}

	vectors, err := adapters.NewPineconeVectorAdapter(nil, nil, "emotion-text")
	if err != nil {
		log.Fatal(err)
	}

	cached, err := emotion.NewCachingTextClassifier(gateway, embedding, vectors, 0.92)
	if err != nil {
		log.Fatal(err)
	}

	history, err := store.New("./history.db")
	if err != nil {
		log.Fatal(err)
	}

	analyzer, err := emotion.NewAnalyzer(emotion.Config{
		TextClassifier:  cached,
		ImageClassifier: gateway,
		TextLabels:      emotion.GatewayLabels(),
		History:         history,
	})
	if err != nil {
		log.Fatal(err)
	}

	res, err := analyzer.AnalyzeCombined(context.Background(), "I can't believe it", []byte{ /* frame bytes */ })
	if err != nil {
		log.Fatal(err)
	}

	if res.Text != nil {
		fmt.Printf("Text: %s\n", res.Text.DominantEmotion)
	}
	if res.Image != nil {
		fmt.Printf("Frame: %s\n", res.Image.DominantEmotion)
	}

	analyzer.Close()
	cached.Close()
	history.Close()
}
