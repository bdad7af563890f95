package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TokenUsage carries the token counts and estimated cost of one call.
// Reported is true when the counts came from the provider rather than the
// text-length estimator.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
	Reported     bool    `json:"reported"`
}

// chat-completions response shape (OpenAI and Perplexity)
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// generateContent response shape (Gemini)
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

// ReportedUsage holds provider-reported token counts, when present.
type ReportedUsage struct {
	InputTokens  int
	OutputTokens int
}

// ExtractContent pulls the assistant's text out of a raw provider response,
// branching on the provider family. A missing content path is ErrNoContent,
// not a crash. The second return carries provider-reported token counts when
// the response included them.
func ExtractContent(raw []byte, family ProviderFamily) (string, *ReportedUsage, error) {
	switch family {
	case FamilyGemini:
		var resp geminiResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", nil, fmt.Errorf("parse gemini response: %w: %v", ErrNoContent, err)
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", nil, fmt.Errorf("gemini response: %w", ErrNoContent)
		}
		text := resp.Candidates[0].Content.Parts[0].Text
		if text == "" {
			return "", nil, fmt.Errorf("gemini response: %w", ErrNoContent)
		}
		var usage *ReportedUsage
		if m := resp.UsageMetadata; m != nil {
			usage = &ReportedUsage{InputTokens: m.PromptTokenCount, OutputTokens: m.CandidatesTokenCount}
		}
		return text, usage, nil

	case FamilyOpenAI, FamilyPerplexity:
		var resp chatResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", nil, fmt.Errorf("parse chat response: %w: %v", ErrNoContent, err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", nil, fmt.Errorf("chat response: %w", ErrNoContent)
		}
		var usage *ReportedUsage
		if u := resp.Usage; u != nil {
			usage = &ReportedUsage{InputTokens: u.PromptTokens, OutputTokens: u.CompletionTokens}
		}
		return resp.Choices[0].Message.Content, usage, nil

	default:
		return "", nil, fmt.Errorf("unhandled provider family %q: %w", family, ErrNoContent)
	}
}

// ExtractJSONObject digs a JSON object out of free-form model output.
// Providers are instructed to answer with strict JSON but commonly wrap it
// in prose or code fences, so this is deliberately liberal:
//
//  1. a ```json fenced block wins, taking everything up to the next ```;
//  2. otherwise the substring from the first '{' to the last '}';
//  3. otherwise the trimmed text unchanged, leaving Decode to report the
//     failure.
func ExtractJSONObject(text string) string {
	trimmed := strings.TrimSpace(text)

	const fence = "```json"
	if start := strings.Index(trimmed, fence); start != -1 {
		rest := trimmed[start+len(fence):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}

	open := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if open != -1 && last != -1 && last >= open {
		return trimmed[open : last+1]
	}

	return trimmed
}

// Decode deserializes extracted JSON into a task result shape. The extractor
// is liberal; the decoder stays strict about shape. Callers treat
// ErrDecodeFailure as "no usable answer", never as fatal.
func Decode(jsonText string, out any) error {
	if err := json.Unmarshal([]byte(jsonText), out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return nil
}
