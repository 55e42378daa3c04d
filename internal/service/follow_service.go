package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the follower -> target edge and returns the target user so
// handlers can name them in the response. Following yourself or following the
// same user twice is an error.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) (*models.User, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	created, err := s.followRepo.Follow(ctx, followerID, targetID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !created {
		observability.RecordEngagement("follow", "duplicate")
		return nil, models.NewConflictError("Already following")
	}
	observability.RecordEngagement("follow", "created")
	return target, nil
}

// Unfollow removes the edge; unfollowing someone you never followed succeeds.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.RecordEngagement("follow", "removed")
	return target, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}
