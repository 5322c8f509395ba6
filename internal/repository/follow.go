package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines persistence operations for the follow graph. The
// follows table is the authoritative record; the paired counters on the two
// user rows are maintained in the same transaction as the join row.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow creates the relationship and increments followee.followed_by and
// follower.follows atomically. Re-following an existing relationship is a
// no-op: the conflict clause suppresses the insert and the counters move only
// when a row was actually created.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Follow", "follows")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
			DoNothing: true,
		}).Create(&follow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", followeeID).
			UpdateColumn("followed_by", gorm.Expr("followed_by + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", followerID).
			UpdateColumn("follows", gorm.Expr("follows + ?", 1)).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

// Unfollow removes the relationship and decrements both counters in the same
// transaction. ErrNotFollowed is returned when no relationship existed, so a
// double-unfollow can never drive the counters below their true value.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Unfollow", "follows")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFollowed
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", followeeID).
			UpdateColumn("followed_by", gorm.Expr("followed_by - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", followerID).
			UpdateColumn("follows", gorm.Expr("follows - ?", 1)).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFollowed) {
			return err
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followeeID)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
