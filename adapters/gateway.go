package adapters

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	emotion "github.com/Krtindandu/emotisecure-login"
	"github.com/Krtindandu/emotisecure-login/clients/gateway"
	"github.com/tidwall/gjson"
)

const defaultGatewayModel = "gpt-4.1-mini"

const gatewaySystemPrompt = `You are an emotion detection assistant. Analyze the user's input and score it against these emotions: happy, sad, angry, surprised, fearful, disgusted, contempt, neutral.

Rules:
- Respond with ONLY a JSON object, no prose
- Shape: {"emotions": [{"label": "happy", "score": 0.8}, ...]}
- Include every emotion you detect, score each between 0 and 1
- Scores do not need to sum to 1`

// GatewayAdapter implements TextClassifier and ImageClassifier against an
// OpenAI-compatible multimodal chat endpoint
type GatewayAdapter struct {
	client interface {
		ChatCompletion(ctx context.Context, req gateway.ChatCompletionRequest) (*gateway.ChatCompletionResponse, error)
	}
	model       string
	temperature *float32
}

// NewGatewayAdapter creates a new adapter for the remote gateway. The API key
// falls back to the GATEWAY_API_KEY environment variable; empty model and
// baseURL select the defaults.
func NewGatewayAdapter(apiKey *string, baseURL, model string, temperature *float32) (*GatewayAdapter, error) {
	key, err := loadEnvVar(apiKey, "GATEWAY_API_KEY")
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = defaultGatewayModel
	}

	return &GatewayAdapter{
		client:      gateway.NewClient(*key, baseURL),
		model:       model,
		temperature: temperature,
	}, nil
}

// ClassifyText implements TextClassifier
func (a *GatewayAdapter) ClassifyText(ctx context.Context, text string) (emotion.RawClassification, error) {
	return a.classify(ctx, gateway.UserMessage(text))
}

// ClassifyImage implements ImageClassifier. The frame is sent inline as a
// base64 data URL.
func (a *GatewayAdapter) ClassifyImage(ctx context.Context, frame []byte) (emotion.RawClassification, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		http.DetectContentType(frame),
		base64.StdEncoding.EncodeToString(frame))

	return a.classify(ctx, gateway.UserParts(
		gateway.TextPart("Score the facial expression in this frame."),
		gateway.ImagePart(dataURL),
	))
}

func (a *GatewayAdapter) classify(ctx context.Context, userMessage gateway.ChatMessage) (emotion.RawClassification, error) {
	req := gateway.ChatCompletionRequest{
		Model: a.model,
		Messages: []gateway.ChatMessage{
			gateway.SystemMessage(gatewaySystemPrompt),
			userMessage,
		},
		MaxCompletionTokens: 300,
		Temperature:         a.temperature,
	}

	resp, err := a.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", emotion.ErrModelUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in gateway response", emotion.ErrInvalidResponse)
	}

	return parseGatewayScores(resp.Choices[0].Message.Content)
}

// parseGatewayScores extracts the raw label/score pairs from the model's JSON
// reply, tolerating a surrounding markdown code fence
func parseGatewayScores(content string) (emotion.RawClassification, error) {
	content = stripCodeFence(content)

	if !gjson.Valid(content) {
		return nil, fmt.Errorf("%w: gateway reply is not valid JSON", emotion.ErrInvalidResponse)
	}

	emotions := gjson.Get(content, "emotions")
	if !emotions.IsArray() {
		return nil, fmt.Errorf("%w: gateway reply missing emotions array", emotion.ErrInvalidResponse)
	}

	var raw emotion.RawClassification
	emotions.ForEach(func(_, item gjson.Result) bool {
		label := item.Get("label")
		score := item.Get("score")
		if !label.Exists() || !score.Exists() {
			return true
		}
		raw = append(raw, emotion.LabelScore{
			Label: label.String(),
			Score: score.Float(),
		})
		return true
	})

	return raw, nil
}

// stripCodeFence removes a ```json ... ``` wrapper if the model added one
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
