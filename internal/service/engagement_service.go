package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxCommentLen = 300

// EngagementService manages likes and comments on posts, keeping the
// denormalized counters on the parent post consistent with the join tables.
type EngagementService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Like records actorID's like on the post. Liking a post twice is a silent
// no-op: the end state is one like record either way.
func (s *EngagementService) Like(ctx context.Context, actorID, postID uint) error {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return err
	}
	if err := s.postRepo.Like(ctx, actorID, postID); err != nil {
		return err
	}
	middleware.EngagementEvents.WithLabelValues("like").Inc()
	return nil
}

// Unlike removes actorID's like from the post.
func (s *EngagementService) Unlike(ctx context.Context, actorID, postID uint) error {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return err
	}
	if err := s.postRepo.Unlike(ctx, actorID, postID); err != nil {
		if errors.Is(err, repository.ErrNotLiked) {
			return models.NewNotLikedError("You have not liked this post")
		}
		return err
	}
	middleware.EngagementEvents.WithLabelValues("unlike").Inc()
	return nil
}

// Comment adds actorID's comment to the post. A user may comment at most
// once per post; there is no update or delete path.
func (s *EngagementService) Comment(ctx context.Context, actorID, postID uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.NewValidationError("Comment cannot be empty")
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 300 characters)")
	}

	if err := s.ensurePostExists(ctx, postID); err != nil {
		return err
	}

	comment := &models.Comment{
		UserID:  actorID,
		PostID:  postID,
		Comment: text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrAlreadyCommented) {
			return models.NewAlreadyCommentedError("You have already commented on this post")
		}
		return err
	}
	middleware.EngagementEvents.WithLabelValues("comment").Inc()
	return nil
}

func (s *EngagementService) ensurePostExists(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("A post with that ID could not be found", fiber.StatusNotFound)
		}
		return err
	}
	return nil
}
