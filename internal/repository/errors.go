// Package repository implements the data access layer for the application.
package repository

import "errors"

// Sentinel errors returned by repositories. Services translate these into
// user-facing application errors.
var (
	// ErrNotLiked is returned by Unlike when no like exists for the pair.
	ErrNotLiked = errors.New("like does not exist")
	// ErrAlreadyCommented is returned by comment creation when the user has
	// already commented on the post.
	ErrAlreadyCommented = errors.New("comment already exists")
	// ErrNotFollowed is returned by Unfollow when no follow record exists.
	ErrNotFollowed = errors.New("follow does not exist")
)
