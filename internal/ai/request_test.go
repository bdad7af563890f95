package ai

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"shoppingapp-backend/pkg/logger"
)

type staticKeys map[ProviderFamily]string

func (k staticKeys) APIKey(family ProviderFamily) string { return k[family] }

func allKeys() staticKeys {
	return staticKeys{
		FamilyOpenAI:     "sk-openai",
		FamilyPerplexity: "pplx-key",
		FamilyGemini:     "gm-key",
	}
}

func makeTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestBuildChatRequest(t *testing.T) {
	logger.Log = zap.NewNop()
	builder := NewRequestBuilder(NewRegistry(), allKeys())

	out, err := builder.Build("gpt-4o-mini", "what is the tax rate?", nil)
	assert.NoError(t, err)
	assert.Equal(t, openAIEndpoint, out.URL)
	assert.Equal(t, "Bearer sk-openai", out.Headers["Authorization"])
	assert.Equal(t, "application/json", out.Headers["Content-Type"])

	var body chatRequest
	assert.NoError(t, json.Unmarshal(out.Body, &body))
	assert.Equal(t, "gpt-4o-mini", body.Model)
	assert.Equal(t, maxResponseTokens, body.MaxTokens)
	assert.Len(t, body.Messages, 1)
	assert.Equal(t, "user", body.Messages[0].Role)
	assert.Equal(t, "what is the tax rate?", body.Messages[0].Content)
}

func TestBuildChatRequestWithImage(t *testing.T) {
	logger.Log = zap.NewNop()
	builder := NewRequestBuilder(NewRegistry(), allKeys())

	out, err := builder.Build("gpt-4o", "read this price tag", makeTestPNG(t))
	assert.NoError(t, err)

	var body struct {
		Messages []struct {
			Content []chatContentPart `json:"content"`
		} `json:"messages"`
	}
	assert.NoError(t, json.Unmarshal(out.Body, &body))
	assert.Len(t, body.Messages, 1)
	assert.Len(t, body.Messages[0].Content, 2)
	assert.Equal(t, "text", body.Messages[0].Content[0].Type)
	assert.Equal(t, "image_url", body.Messages[0].Content[1].Type)
	assert.True(t, strings.HasPrefix(body.Messages[0].Content[1].ImageURL.URL, "data:image/jpeg;base64,"))
}

func TestBuildGeminiRequest(t *testing.T) {
	logger.Log = zap.NewNop()
	builder := NewRequestBuilder(NewRegistry(), allKeys())

	out, err := builder.Build("gemini-2.0-flash", "estimate this price", makeTestPNG(t))
	assert.NoError(t, err)
	assert.Contains(t, out.URL, "gemini-2.0-flash:generateContent")
	assert.Equal(t, "gm-key", out.Headers["x-goog-api-key"])
	assert.Empty(t, out.Headers["Authorization"])

	var body geminiRequest
	assert.NoError(t, json.Unmarshal(out.Body, &body))
	assert.Len(t, body.Contents, 1)
	assert.Len(t, body.Contents[0].Parts, 2)
	assert.Equal(t, "estimate this price", body.Contents[0].Parts[0].Text)
	assert.NotNil(t, body.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", body.Contents[0].Parts[1].InlineData.MimeType)
	assert.NotEmpty(t, body.Contents[0].Parts[1].InlineData.Data)
}

func TestBuildUnknownModel(t *testing.T) {
	builder := NewRequestBuilder(NewRegistry(), allKeys())

	_, err := builder.Build("gpt-99", "hello", nil)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestBuildMissingAPIKey(t *testing.T) {
	builder := NewRequestBuilder(NewRegistry(), staticKeys{})

	_, err := builder.Build("sonar", "hello", nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestBuildImageForTextOnlyModel(t *testing.T) {
	registry := &Registry{models: map[string]ModelDescriptor{
		"text-only": {
			ID:       "text-only",
			Family:   FamilyOpenAI,
			Endpoint: openAIEndpoint,
		},
	}}
	builder := NewRequestBuilder(registry, allKeys())

	_, err := builder.Build("text-only", "hello", makeTestPNG(t))
	assert.ErrorIs(t, err, ErrUnsupportedModality)
}

func TestBuildRejectsUndecodableImage(t *testing.T) {
	logger.Log = zap.NewNop()
	builder := NewRequestBuilder(NewRegistry(), allKeys())

	_, err := builder.Build("gpt-4o", "hello", []byte("not an image"))
	assert.Error(t, err)
}
