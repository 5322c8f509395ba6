// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// FollowCounts holds the denormalized follower/following counters for a user.
// Both columns carry a schema-level non-negative floor; the authoritative
// record behind them is the follows table.
type FollowCounts struct {
	FollowedBy int `gorm:"column:followed_by;not null;default:0;check:chk_followed_by_non_negative,followed_by >= 0" json:"followed_by"`
	Follows    int `gorm:"column:follows;not null;default:0;check:chk_follows_non_negative,follows >= 0" json:"follows"`
}

// User represents a user account in the Ripple application.
// Deactivated users keep their row but are excluded from every lookup
// via the Active flag.
type User struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	FullName       string       `gorm:"not null" json:"full_name"`
	Email          string       `gorm:"uniqueIndex;not null" json:"email"`
	Password       string       `gorm:"not null" json:"-"`
	ProfilePicture string       `gorm:"not null;default:default.jpg" json:"profile_picture"`
	Counts         FollowCounts `gorm:"embedded" json:"counts"`
	Active         bool         `gorm:"not null;default:true" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Posts          []Post       `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
