// Package service contains the business logic between HTTP handlers and repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RelationshipService manages the follow graph and the paired
// follower/following counters on user records.
type RelationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *RelationshipService {
	return &RelationshipService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes actorID follow targetID and returns the confirmation message.
// Following an already-followed user leaves the counters untouched.
func (s *RelationshipService) Follow(ctx context.Context, actorID, targetID uint) (string, error) {
	if actorID == targetID {
		return "", models.NewValidationError("You cannot follow yourself")
	}

	target, err := s.lookupTarget(ctx, targetID)
	if err != nil {
		return "", err
	}

	if err := s.followRepo.Follow(ctx, actorID, targetID); err != nil {
		return "", err
	}
	middleware.FollowEvents.WithLabelValues("follow").Inc()

	return fmt.Sprintf("You are now following %s.", target.FullName), nil
}

// Unfollow removes the relationship and returns the confirmation message.
func (s *RelationshipService) Unfollow(ctx context.Context, actorID, targetID uint) (string, error) {
	target, err := s.lookupTarget(ctx, targetID)
	if err != nil {
		return "", err
	}

	if err := s.followRepo.Unfollow(ctx, actorID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFollowed) {
			return "", models.NewNotFollowedError("You are not following this user")
		}
		return "", err
	}
	middleware.FollowEvents.WithLabelValues("unfollow").Inc()

	return fmt.Sprintf("You have unfollowed %s.", target.FullName), nil
}

// Me returns the authenticated user's profile projection.
func (s *RelationshipService) Me(ctx context.Context, actorID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthenticatedError("The user belonging to this token does no longer exist.")
		}
		return nil, err
	}
	return user, nil
}

func (s *RelationshipService) lookupTarget(ctx context.Context, targetID uint) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Invalid user id. Please provide a valid one", fiber.StatusBadRequest)
		}
		return nil, err
	}
	return target, nil
}
