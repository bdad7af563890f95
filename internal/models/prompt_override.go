package models

import "time"

// PromptOverride stores a user-edited prompt template for one task kind.
// When Enabled is false the built-in default is used; overrides are never
// deleted, only disabled or reset.
type PromptOverride struct {
	TaskKind  string    `gorm:"primarykey" json:"task_kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Enabled   bool      `gorm:"not null;default:false" json:"enabled"`
}

func (PromptOverride) TableName() string {
	return "prompt_overrides"
}
