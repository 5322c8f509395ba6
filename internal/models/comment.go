package models

import (
	"time"
)

// Comment represents a comment on a post.
// A user may comment at most once per post; the composite unique index on
// (user_id, post_id) enforces that at the schema level.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Comment   string    `gorm:"size:300;not null" json:"comment"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_comment_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
