package model

import "time"

// User stores the authorization state of a Telegram user.
// TelegramID is the external chat identity and never changes after creation.
type User struct {
	ID           uint  `gorm:"primaryKey"`
	TelegramID   int64 `gorm:"uniqueIndex"`
	IsAuthorized bool  `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
