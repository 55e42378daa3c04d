package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		searchFn:        func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("only the owner may update", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, TargetID: 2})
		assertUnauthorizedError(t, err)
	})

	t.Run("nil fields are untouched", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Bio: "old bio", Location: "Lisbon"}, nil
		}
		var saved *models.User
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(userRepo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			TargetID: 1,
			Bio:      strPtr("new bio"),
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "new bio", saved.Bio)
		assert.Equal(t, "Lisbon", saved.Location)
	})

	t.Run("bio too long", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:   1,
			TargetID: 1,
			Bio:      strPtr(strings.Repeat("x", 501)),
		})
		assertValidationError(t, err)
	})
}

func TestUserService_SearchUsers(t *testing.T) {
	t.Parallel()

	t.Run("blank query matches nobody", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.searchFn = func(_ context.Context, _ string, _, _ int) ([]models.User, error) {
			t.Fatal("search should not hit the repository for a blank query")
			return nil, nil
		}

		svc := NewUserService(userRepo)
		for _, q := range []string{"", "   ", "\t"} {
			users, err := svc.SearchUsers(context.Background(), q, 20, 0)
			require.NoError(t, err)
			assert.Empty(t, users)
			assert.NotNil(t, users)
		}
	})

	t.Run("delegates with clamped limit", func(t *testing.T) {
		t.Parallel()
		var gotLimit int
		userRepo := noopUserRepo()
		userRepo.searchFn = func(_ context.Context, q string, limit, _ int) ([]models.User, error) {
			gotLimit = limit
			return []models.User{{Username: "alice"}}, nil
		}

		svc := NewUserService(userRepo)
		users, err := svc.SearchUsers(context.Background(), "ali", 0, 0)
		require.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, 20, gotLimit)
	})
}
