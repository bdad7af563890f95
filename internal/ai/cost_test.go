package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokensFloor(t *testing.T) {
	assert.Equal(t, 1, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("hi"))
}

func TestEstimateTokensPlainText(t *testing.T) {
	// 41 chars, no structure: 10.25 * 1.2 = 12.3
	assert.Equal(t, 12, EstimateTokens(strings.Repeat("a", 41)))
}

func TestEstimateTokensJSONSurcharge(t *testing.T) {
	plain := strings.Repeat("a", 41)
	structured := strings.Repeat("a", 40) + "{"
	assert.Greater(t, EstimateTokens(structured), EstimateTokens(plain))
	// 41 chars: 10.25 * 1.15 * 1.2 = 14.145
	assert.Equal(t, 14, EstimateTokens(structured))
}

func TestEstimateTokensPunctuationSurcharge(t *testing.T) {
	// 40 chars, half punctuation: 10 * 1.10 * 1.2 = 13.2
	assert.Equal(t, 13, EstimateTokens(strings.Repeat("a.", 20)))
}

func TestEstimateTokensNewlines(t *testing.T) {
	// 58 chars with 10 newlines: (14.5 + 5) * 1.2 = 23.4
	text := strings.Repeat("a", 48) + strings.Repeat("\n", 10)
	assert.Equal(t, 23, EstimateTokens(text))
}

func TestEstimateTokensNonDecreasing(t *testing.T) {
	// A longer run of the same text never estimates fewer tokens.
	prev := EstimateTokens("")
	for n := 1; n <= 400; n++ {
		got := EstimateTokens(strings.Repeat("a", n))
		assert.GreaterOrEqual(t, got, prev, "length %d", n)
		prev = got
	}
}

func TestCost(t *testing.T) {
	pricing := Pricing{InputPerK: 0.0025, OutputPerK: 0.01}
	assert.InDelta(t, 0.0075, Cost(1000, 500, pricing), 1e-9)
}

func TestCostClampsNegativeTokens(t *testing.T) {
	pricing := Pricing{InputPerK: 1, OutputPerK: 1}
	assert.Equal(t, 0.0, Cost(-10, -10, pricing))
}
