package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"shoppingapp-backend/internal/models"
)

// GenerateHistoryCSV renders interaction records as CSV for export to a
// spreadsheet. Only the visible history is exportable; totals live in the
// billing summary.
func GenerateHistoryCSV(records []models.InteractionRecord) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{
		"ID", "Time", "Task", "Subject", "Provider", "Model",
		"Input Tokens", "Output Tokens", "Cost",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.CreatedAt.Format(time.RFC3339),
			r.TaskKind,
			r.SubjectName,
			r.ProviderName,
			r.ModelID,
			fmt.Sprintf("%d", r.InputTokens),
			fmt.Sprintf("%d", r.OutputTokens),
			fmt.Sprintf("%.6f", r.Cost),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
