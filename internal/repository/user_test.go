package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "posts_count", "followers_count", "following_count"}).
					AddRow(1, "testuser", "test@example.com", 3, 2, 1)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT users.*,`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT users.*,`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.Equal(t, "NOT_FOUND", appErr.Code)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
				assert.Equal(t, 3, user.PostsCount)
				assert.Equal(t, 2, user.FollowersCount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice")
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1`)).
			WithArgs("alice", 1).
			WillReturnRows(rows)

		user, err := repo.GetByUsername(ctx, "alice")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1`)).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByUsername(ctx, "ghost")
		assert.NoError(t, err) // nil, nil so callers can't leak user existence
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.Create(ctx, &models.User{Username: "newuser", Email: "new@example.com"})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_username" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.User{Username: "newuser", Email: "other@example.com"})
		assert.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Matches", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username"}).
			AddRow(1, "alice").
			AddRow(2, "alicia")
		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(username) LIKE $1 OR LOWER(first_name) LIKE $2 OR LOWER(last_name) LIKE $3`)).
			WithArgs("%ali%", "%ali%", "%ali%", 20).
			WillReturnRows(rows)

		users, err := repo.Search(ctx, "Ali", 20, 0)
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Matches", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(username) LIKE $1`)).
			WithArgs("%zzz%", "%zzz%", "%zzz%", 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

		users, err := repo.Search(ctx, "zzz", 20, 0)
		assert.NoError(t, err)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(username) LIKE $1`)).
			WithArgs("%x%", "%x%", "%x%", 20).
			WillReturnError(errors.New("connection timeout"))

		users, err := repo.Search(ctx, "x", 20, 0)
		assert.Error(t, err)
		assert.Nil(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
