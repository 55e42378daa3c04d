package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create_InvalidatesOwnerProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	// A cached profile for the owner would carry a stale posts_count.
	require.NoError(t, mr.Set(cache.UserKey(3), `{"id":3}`))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, &models.Post{Content: "hello", UserID: 3})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.UserKey(3)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Success with details", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "content", "user_id", "comments_count", "likes_count", "has_liked"}).
			AddRow(1, "hello world", 2, 4, 7, true)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs(5, 1, 1).
			WillReturnRows(postRows)

		userRows := sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "author")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(2).
			WillReturnRows(userRows)

		post, err := repo.GetByID(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, "hello world", post.Content)
		assert.Equal(t, 7, post.LikesCount)
		assert.Equal(t, 4, post.CommentsCount)
		assert.True(t, post.HasLiked)
		assert.Equal(t, "author", post.User.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Anonymous viewer never has liked", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "content", "user_id", "has_liked"}).
			AddRow(1, "hello world", 2, false)
		mock.ExpectQuery(regexp.QuoteMeta(`FALSE AS has_liked`)).
			WithArgs(1, 1).
			WillReturnRows(postRows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

		post, err := repo.GetByID(ctx, 1, 0)
		require.NoError(t, err)
		assert.False(t, post.HasLiked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*,`)).
			WithArgs(99, 1, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByID(ctx, 99, 5)
		assert.Error(t, err)
		assert.Nil(t, post)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_ListByOwners(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Orders newest first", func(t *testing.T) {
		postRows := sqlmock.NewRows([]string{"id", "content", "user_id"}).
			AddRow(2, "second", 1).
			AddRow(1, "first", 1)
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC`)).
			WillReturnRows(postRows)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

		posts, err := repo.ListByOwners(ctx, []uint{1}, 20, 0, 1)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "second", posts[0].Content)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No owners short-circuits", func(t *testing.T) {
		posts, err := repo.ListByOwners(ctx, nil, 20, 0, 1)
		assert.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Creates like", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		created, err := repo.Like(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already liked conflicts silently", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"})) // ON CONFLICT DO NOTHING returns no rows
		mock.ExpectCommit()

		created, err := repo.Like(ctx, 1, 2)
		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		created, err := repo.Like(ctx, 1, 2)
		assert.Error(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Deletes existing like", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Unlike(ctx, 1, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent like is a no-op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, repo.Unlike(ctx, 1, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_IsLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	liked, err := repo.IsLiked(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "deleted_at"=$1`)).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(ctx, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
