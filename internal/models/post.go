package models

import (
	"time"
)

// Post represents a post in the Ripple application.
// LikesCount and CommentsCount are denormalized copies of the cardinality of
// the likes/comments tables; they are maintained inside the same transaction
// as the join row they mirror, so count == len(data) holds at all times.
type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"size:1000" json:"description,omitempty"`
	LikesCount    int       `gorm:"not null;default:0;check:chk_likes_count_non_negative,likes_count >= 0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0;check:chk_comments_count_non_negative,comments_count >= 0" json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	Comments      []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes         []Like    `gorm:"foreignKey:PostID" json:"likes,omitempty"`
}
