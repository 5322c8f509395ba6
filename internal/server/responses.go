package server

import (
	"time"

	"ripple/internal/models"
)

// Presentation layer for posts. Creation time is stored as a structured
// timestamp and rendered in the locale-style form only here.
const displayTimeLayout = "1/2/2006, 3:04:05 PM"

func formatTimestamp(t time.Time) string {
	return t.Format(displayTimeLayout)
}

// ownerSummary is the post owner's public projection.
type ownerSummary struct {
	ID             uint                `json:"id"`
	FullName       string              `json:"full_name"`
	ProfilePicture string              `json:"profile_picture"`
	Counts         models.FollowCounts `json:"counts"`
}

// commentSummary carries the limited comment fields exposed inline with a
// post: owner, post reference and timestamps are stripped.
type commentSummary struct {
	ID      uint   `json:"id"`
	Comment string `json:"comment"`
}

type commentAggregate struct {
	Count int              `json:"count"`
	Data  []commentSummary `json:"data"`
}

// likeAggregate exposes the like count only, never the like list.
type likeAggregate struct {
	Count int `json:"count"`
}

type postResponse struct {
	ID          uint             `json:"id"`
	User        *ownerSummary    `json:"user,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	CreatedAt   string           `json:"created_at"`
	Comments    commentAggregate `json:"comments"`
	Likes       likeAggregate    `json:"likes"`
}

// newPostResponse shapes a post for the API. The owner is included only when
// includeOwner is set; the owner's own post listing omits it.
func newPostResponse(post *models.Post, includeOwner bool) postResponse {
	comments := make([]commentSummary, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, commentSummary{
			ID:      comment.ID,
			Comment: comment.Comment,
		})
	}

	resp := postResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		CreatedAt:   formatTimestamp(post.CreatedAt),
		Comments: commentAggregate{
			Count: post.CommentsCount,
			Data:  comments,
		},
		Likes: likeAggregate{
			Count: post.LikesCount,
		},
	}

	if includeOwner && post.User != nil {
		resp.User = &ownerSummary{
			ID:             post.User.ID,
			FullName:       post.User.FullName,
			ProfilePicture: post.User.ProfilePicture,
			Counts:         post.User.Counts,
		}
	}

	return resp
}
