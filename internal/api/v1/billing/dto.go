package billing

import "shoppingapp-backend/internal/ledger"

// RemainingProjection is the per-category "how many more calls fit in the
// budget" estimate. Remaining is nil when the projection is unknown, which
// is distinct from a known zero.
type RemainingProjection struct {
	TaskKind  string `json:"task_kind"`
	Remaining *int64 `json:"remaining"`
}

type SummaryResponse struct {
	*ledger.Summary
	Projections []RemainingProjection `json:"projections"`
}

type BudgetRequest struct {
	Amount *float64 `json:"amount"` // null clears the budget
}

type AdjustmentRequest struct {
	Amount float64 `json:"amount"`
}

type TotalOverrideRequest struct {
	Amount float64 `json:"amount" binding:"min=0"`
}
