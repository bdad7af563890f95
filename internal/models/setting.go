package models

import "time"

// Setting is a key-value row for scalar app settings: the selected model per
// task category and the per-provider API keys.
type Setting struct {
	Key       string    `gorm:"primarykey" json:"key"`
	UpdatedAt time.Time `json:"updated_at"`
	Value     string    `gorm:"type:text" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}
