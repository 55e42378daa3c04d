package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow relationship operations
type FollowRepository interface {
	// Follow creates the follower -> following edge if absent and reports
	// whether a row was created.
	Follow(ctx context.Context, followerID, followingID uint) (bool, error)
	// Unfollow removes the edge if present; removing an absent edge is a no-op.
	Unfollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	// GetFollowingIDs returns the ids of every user followerID follows.
	GetFollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if result.Error != nil {
		return false, result.Error
	}

	created := result.RowsAffected > 0
	if created {
		cache.InvalidateUser(ctx, followingID)
		cache.InvalidateUser(ctx, followerID)
	}
	return created, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	if err == nil {
		cache.InvalidateUser(ctx, followingID)
		cache.InvalidateUser(ctx, followerID)
	}
	return err
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
