package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObjectFencedBlock(t *testing.T) {
	text := "Here is the answer:\n```json\n{\"taxRate\": 6.0}\n```\nHope that helps."
	assert.Equal(t, `{"taxRate": 6.0}`, ExtractJSONObject(text))
}

func TestExtractJSONObjectBraceSpan(t *testing.T) {
	text := `Sure! The rate is {"taxRate": null} based on current data.`
	assert.Equal(t, `{"taxRate": null}`, ExtractJSONObject(text))
}

func TestExtractJSONObjectOuterBraces(t *testing.T) {
	// Nested objects must keep everything between the first '{' and the
	// last '}'.
	text := `prefix {"riskyAdditives": [{"name": "E621"}], "safeAdditives": []} suffix`
	assert.Equal(t, `{"riskyAdditives": [{"name": "E621"}], "safeAdditives": []}`, ExtractJSONObject(text))
}

func TestExtractJSONObjectPassthrough(t *testing.T) {
	assert.Equal(t, "no json here", ExtractJSONObject("  no json here \n"))
}

func TestExtractJSONObjectUnclosedFenceFallsBack(t *testing.T) {
	text := "```json\n{\"taxRate\": 1.5}"
	assert.Equal(t, `{"taxRate": 1.5}`, ExtractJSONObject(text))
}

func TestExtractContentChat(t *testing.T) {
	raw := []byte(`{
		"choices": [{"message": {"content": "{\"taxRate\": 6.5}"}}],
		"usage": {"prompt_tokens": 42, "completion_tokens": 9}
	}`)

	content, usage, err := ExtractContent(raw, FamilyOpenAI)
	assert.NoError(t, err)
	assert.Equal(t, `{"taxRate": 6.5}`, content)
	assert.NotNil(t, usage)
	assert.Equal(t, 42, usage.InputTokens)
	assert.Equal(t, 9, usage.OutputTokens)
}

func TestExtractContentChatWithoutUsage(t *testing.T) {
	raw := []byte(`{"choices": [{"message": {"content": "hello"}}]}`)

	content, usage, err := ExtractContent(raw, FamilyPerplexity)
	assert.NoError(t, err)
	assert.Equal(t, "hello", content)
	assert.Nil(t, usage)
}

func TestExtractContentGemini(t *testing.T) {
	raw := []byte(`{
		"candidates": [{"content": {"parts": [{"text": "{\"estimatedPrice\": 3.99}"}]}}],
		"usageMetadata": {"promptTokenCount": 17, "candidatesTokenCount": 5}
	}`)

	content, usage, err := ExtractContent(raw, FamilyGemini)
	assert.NoError(t, err)
	assert.Equal(t, `{"estimatedPrice": 3.99}`, content)
	assert.NotNil(t, usage)
	assert.Equal(t, 17, usage.InputTokens)
	assert.Equal(t, 5, usage.OutputTokens)
}

func TestExtractContentEmptyChoices(t *testing.T) {
	_, _, err := ExtractContent([]byte(`{"choices": []}`), FamilyOpenAI)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestExtractContentEmptyCandidates(t *testing.T) {
	_, _, err := ExtractContent([]byte(`{"candidates": []}`), FamilyGemini)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestExtractContentMalformedJSON(t *testing.T) {
	_, _, err := ExtractContent([]byte(`not json at all`), FamilyOpenAI)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestDecode(t *testing.T) {
	var result TaxRateResult
	err := Decode(`{"taxRate": 7.25}`, &result)
	assert.NoError(t, err)
	assert.NotNil(t, result.TaxRate)
	assert.Equal(t, 7.25, *result.TaxRate)
}

func TestDecodeNullIsNotFailure(t *testing.T) {
	var result TaxRateResult
	err := Decode(`{"taxRate": null}`, &result)
	assert.NoError(t, err)
	assert.Nil(t, result.TaxRate)
}

func TestDecodeFailure(t *testing.T) {
	var result TaxRateResult
	err := Decode("no json here", &result)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}
