package ai

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EstimateTokens approximates the token count of text when the provider did
// not report real usage. It is a fallback only — reported counts always win.
//
// Baseline is one token per four characters, then: JSON-heavy text costs
// ~15% more, punctuation-dense text ~10% more, each pair of newlines past
// five adds a token, and a final 1.2x keeps the estimate conservative so
// budget projections err high rather than low.
func EstimateTokens(text string) int {
	chars := utf8.RuneCountInString(text)

	est := float64(chars) / 4
	if est < 1 {
		est = 1
	}

	if strings.ContainsAny(text, "{[") {
		est *= 1.15
	}

	special := 0
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			special++
		}
	}
	if chars > 0 && float64(special)/float64(chars) > 0.05 {
		est *= 1.10
	}

	newlines := strings.Count(text, "\n")
	if newlines > 5 {
		est += float64(newlines / 2)
	}

	est *= 1.2

	if est < 1 {
		return 1
	}
	return int(est)
}

// Cost computes the estimated spend for a call given token counts and the
// model's per-thousand-token rates. This is explicitly an approximation; no
// attempt is made to match any vendor's real tokenizer.
func Cost(inputTokens, outputTokens int, pricing Pricing) float64 {
	if inputTokens < 0 {
		inputTokens = 0
	}
	if outputTokens < 0 {
		outputTokens = 0
	}
	return float64(inputTokens)/1000*pricing.InputPerK +
		float64(outputTokens)/1000*pricing.OutputPerK
}
