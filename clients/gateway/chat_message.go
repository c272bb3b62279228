package gateway

import "encoding/json"

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// ContentPart is one element of a multimodal message body
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image reference, typically a base64 data URL
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart builds a text content part
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart builds an image content part from a data URL
func ImagePart(dataURL string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}}
}

// ChatMessage is a single conversation turn. Content is either a plain
// string or a slice of ContentPart for multimodal input.
type ChatMessage struct {
	Role    MessageRole `json:"role"`
	Content any         `json:"content"`
}

// SystemMessage builds a plain-text system message
func SystemMessage(text string) ChatMessage {
	return ChatMessage{Role: MessageRoleSystem, Content: text}
}

// UserMessage builds a plain-text user message
func UserMessage(text string) ChatMessage {
	return ChatMessage{Role: MessageRoleUser, Content: text}
}

// UserParts builds a multimodal user message
func UserParts(parts ...ContentPart) ChatMessage {
	return ChatMessage{Role: MessageRoleUser, Content: parts}
}

// ChatCompletionRequest is the request body for the chat completions endpoint
type ChatCompletionRequest struct {
	Model               string          `json:"model"`
	Messages            []ChatMessage   `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	Temperature         *float32        `json:"temperature,omitempty"`
	ResponseFormat      *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat requests structured output from the model
type ResponseFormat struct {
	Type string `json:"type"`
}

// ResponseMessage is a message as it appears in a completion response
type ResponseMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ChatCompletionChoice is one candidate completion
type ChatCompletionChoice struct {
	Index        int             `json:"index"`
	Message      ResponseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

// ChatCompletionResponse is the response body of the chat completions endpoint
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
}

// ChatCompletionError wraps gateway errors with the raw response body for
// error logging
type ChatCompletionError struct {
	Message    string          `json:"message"`
	StatusCode int             `json:"status_code,omitempty"`
	RawBody    json.RawMessage `json:"raw_body,omitempty"`
}

func (e *ChatCompletionError) Error() string {
	return e.Message
}

// GetRawResponseBody returns the raw response body if available
func (e *ChatCompletionError) GetRawResponseBody() json.RawMessage {
	return e.RawBody
}
