package models

import "time"

// User is a device account. The app is effectively single-tenant per install,
// but each device registers an account so tokens can be revoked independently.
type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
}
