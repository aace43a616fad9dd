package entity

import "time"

// Token is an opaque API token issued to a user by the assertion
// exchange. One token per user; the key is a 40 character hex string.
type Token struct {
	Key       string `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
