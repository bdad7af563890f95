package ai

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // price-tag photos arrive as PNG screenshots on some devices

	"shoppingapp-backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	maxResponseTokens = 1024
	jpegQuality       = 80 // fixed re-encode quality for inline images
)

// KeyResolver supplies the API credential for a provider family. Implemented
// by the settings service; the builder only cares whether a key exists.
type KeyResolver interface {
	APIKey(family ProviderFamily) string
}

// OutboundRequest is a fully shaped provider call, ready for the HTTP
// transport. Constructed per dispatch and never persisted.
type OutboundRequest struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// RequestBuilder turns a rendered prompt (plus an optional image) into the
// provider-specific wire shape. Pure construction: no network side effects.
type RequestBuilder struct {
	registry *Registry
	keys     KeyResolver
}

func NewRequestBuilder(registry *Registry, keys KeyResolver) *RequestBuilder {
	return &RequestBuilder{registry: registry, keys: keys}
}

// chat-completions shapes (OpenAI and Perplexity share them)

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []chatContentPart when an image is attached
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

// generateContent shapes (Gemini)

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// Build produces the outbound request for one dispatch. Request shape
// branches strictly on the resolved provider family, never on the raw model
// id.
func (b *RequestBuilder) Build(modelID, prompt string, imageData []byte) (*OutboundRequest, error) {
	desc, err := b.registry.Resolve(modelID)
	if err != nil {
		return nil, err
	}

	key := b.keys.APIKey(desc.Family)
	if key == "" {
		return nil, fmt.Errorf("build request for %s: %w", desc.Family, ErrMissingAPIKey)
	}

	if len(imageData) > 0 && !desc.SupportsVision {
		return nil, fmt.Errorf("build request for %q: %w", modelID, ErrUnsupportedModality)
	}

	var imageB64 string
	if len(imageData) > 0 {
		imageB64, err = encodeInlineImage(imageData)
		if err != nil {
			return nil, fmt.Errorf("encode image: %w", err)
		}
	}

	switch desc.Family {
	case FamilyGemini:
		return buildGeminiRequest(desc, key, prompt, imageB64)
	case FamilyOpenAI, FamilyPerplexity:
		return buildChatRequest(desc, key, prompt, imageB64)
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unhandled provider family %q", desc.Family)}
	}
}

func buildGeminiRequest(desc ModelDescriptor, key, prompt, imageB64 string) (*OutboundRequest, error) {
	parts := []geminiPart{{Text: prompt}}
	if imageB64 != "" {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageB64},
		})
	}

	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	return &OutboundRequest{
		URL: desc.Endpoint,
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"x-goog-api-key": key,
		},
		Body: body,
	}, nil
}

func buildChatRequest(desc ModelDescriptor, key, prompt, imageB64 string) (*OutboundRequest, error) {
	msg := chatMessage{Role: "user", Content: prompt}
	if imageB64 != "" {
		msg.Content = []chatContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &chatImageURL{
				URL: "data:image/jpeg;base64," + imageB64,
			}},
		}
	}

	body, err := json.Marshal(chatRequest{
		Model:     desc.ID,
		Messages:  []chatMessage{msg},
		MaxTokens: maxResponseTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	return &OutboundRequest{
		URL: desc.Endpoint,
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + key,
		},
		Body: body,
	}, nil
}

// encodeInlineImage normalizes the captured image to JPEG at a fixed quality
// and base64-encodes it for inline embedding. All three target providers
// accept inline images; none require an upload step.
func encodeInlineImage(data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	logger.Log.Debug("re-encoding captured image",
		zap.String("source_format", format),
		zap.Int("source_bytes", len(data)))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
