package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxDescriptionLen = 1000

// PostService provides post creation, retrieval and deletion.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields of a post-creation request.
type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost validates the input and stores a new post owned by in.UserID.
// A fresh post always starts with zero like and comment counters.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Please provide a title for the post")
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 1000 characters)")
	}

	post := &models.Post{
		UserID:      in.UserID,
		Title:       title,
		Description: description,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post with owner summary and comments resolved.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("A post with that ID could not be found", fiber.StatusNotFound)
		}
		return nil, err
	}
	return post, nil
}

// GetUserPosts returns the owner's posts, newest first.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID)
}

// DeletePost permanently removes the post. Only the owner may delete it;
// the post's like and comment records go with it.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return models.NewForbiddenError("This post is not created by you")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("A post with that ID could not be found", fiber.StatusNotFound)
		}
		return err
	}
	return nil
}
