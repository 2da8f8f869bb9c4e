package model

import "time"

// AuthCode is a pre-issued event passcode. Codes are provisioned ahead of the
// event and are read-only at runtime: existence of a row is the only proof of
// validity, there is no expiry or per-user binding.
type AuthCode struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"size:10;uniqueIndex"`
	CreatedAt time.Time
}
