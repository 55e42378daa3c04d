// Package service holds the application's business rules, keeping them out of
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID         uint
	TargetID       uint
	FirstName      *string
	LastName       *string
	Bio            *string
	Website        *string
	Location       *string
	ProfilePicture *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies partial updates to the caller's own profile. Fields
// left nil are untouched.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.UserID != in.TargetID {
		return nil, models.NewUnauthorizedError("You can only update your own profile")
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxFieldLen = 150

	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.FirstName != nil {
		if len(*in.FirstName) > maxFieldLen {
			return nil, models.NewValidationError("First name too long (max 150 characters)")
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if len(*in.LastName) > maxFieldLen {
			return nil, models.NewValidationError("Last name too long (max 150 characters)")
		}
		user.LastName = *in.LastName
	}
	if in.Website != nil {
		user.Website = *in.Website
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

// SearchUsers matches on username, first name and last name. A blank query
// matches nobody rather than everybody.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if strings.TrimSpace(query) == "" {
		return []models.User{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}
