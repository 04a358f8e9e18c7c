package models

import "time"

// InvalidatedToken is a denylist entry for a token that was logged out or
// consumed by a refresh. Rows are created at invalidation, read on every
// verification, and deleted once their expiry has passed.
type InvalidatedToken struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	ExpiryTime time.Time `gorm:"index;not null" json:"expiry_time"`
}
