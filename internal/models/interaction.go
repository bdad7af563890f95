package models

import "time"

// InteractionRecord is one completed AI call. Records are append-only: created
// exactly once per successful dispatch and never mutated afterwards. The
// visible history is truncated to the most recent entries, but cumulative
// billing totals live in BillingState and are independent of truncation.
type InteractionRecord struct {
	ID           string    `gorm:"primarykey" json:"id"` // uuid
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	TaskKind     string    `gorm:"index;not null" json:"task_kind"`
	PromptText   string    `gorm:"type:text" json:"prompt_text"`
	ResponseText string    `gorm:"type:text" json:"response_text"`
	Cost         float64   `gorm:"not null" json:"cost"`
	InputTokens  int       `gorm:"not null" json:"input_tokens"`
	OutputTokens int       `gorm:"not null" json:"output_tokens"`
	SubjectName  string    `json:"subject_name"`
	ProviderName string    `gorm:"not null" json:"provider_name"`
	ModelID      string    `gorm:"not null" json:"model_id"`
}

func (InteractionRecord) TableName() string {
	return "interaction_records"
}

// BillingState is a singleton row holding the monotonic usage totals. It only
// ever grows through Ledger.Record; ResetBilling is the single operation
// allowed to zero it.
type BillingState struct {
	ID               uint      `gorm:"primarykey" json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
	TotalSpent       float64   `gorm:"not null;default:0" json:"total_spent"`
	TotalCount       int64     `gorm:"not null;default:0" json:"total_count"`
	BudgetAmount     float64   `gorm:"not null;default:0" json:"budget_amount"`
	BudgetSet        bool      `gorm:"not null;default:false" json:"budget_set"`
	ManualAdjustment float64   `gorm:"not null;default:0" json:"manual_adjustment"`
}

func (BillingState) TableName() string {
	return "billing_state"
}

// CategoryStat accumulates per-task-kind counts and spend, used for the
// remaining-usage projections.
type CategoryStat struct {
	TaskKind  string    `gorm:"primarykey" json:"task_kind"`
	UpdatedAt time.Time `json:"updated_at"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	Cost      float64   `gorm:"not null;default:0" json:"cost"`
}

func (CategoryStat) TableName() string {
	return "category_stats"
}
