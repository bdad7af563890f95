package ledger

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shoppingapp-backend/internal/models"
)

func TestGenerateHistoryCSV(t *testing.T) {
	records := []models.InteractionRecord{
		{
			ID:           "abc-123",
			CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			TaskKind:     "tax_rate_lookup",
			SubjectName:  "milk",
			ProviderName: "Perplexity",
			ModelID:      "sonar",
			InputTokens:  120,
			OutputTokens: 15,
			Cost:         0.000135,
		},
	}

	data, err := GenerateHistoryCSV(records)
	assert.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "abc-123", rows[1][0])
	assert.Equal(t, "tax_rate_lookup", rows[1][2])
	assert.Equal(t, "sonar", rows[1][5])
	assert.Equal(t, "120", rows[1][6])
	assert.Equal(t, "0.000135", rows[1][8])
}

func TestGenerateHistoryCSVEmpty(t *testing.T) {
	data, err := GenerateHistoryCSV(nil)
	assert.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
