package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

type PostService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
	VideoURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Content  string
	ImageURL *string
	VideoURL *string
}

func NewPostService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *PostService {
	return &PostService{postRepo: postRepo, followRepo: followRepo}
}

const maxPostLen = 10000

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 10000 characters)")
	}

	post := &models.Post{
		Content:  in.Content,
		ImageURL: in.ImageURL,
		VideoURL: in.VideoURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetPost(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, wrapNotFound(err, "Post", id)
	}
	return post, nil
}

// ListFeed returns posts from the users viewerID follows plus their own,
// newest first. Anonymous viewers get an empty feed.
func (s *PostService) ListFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	if viewerID == 0 {
		return []*models.Post{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	ids, err := s.followRepo.GetFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	owners := append(ids, viewerID)

	posts, err := s.postRepo.ListByOwners(ctx, owners, limit, offset, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, wrapNotFound(err, "Post", in.PostID)
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostLen {
		return nil, models.NewValidationError("Post too long (max 10000 characters)")
	}

	post.Content = in.Content
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	if in.VideoURL != nil {
		post.VideoURL = *in.VideoURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, post.ID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return wrapNotFound(err, "Post", postID)
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// LikePost records userID's like on postID. Liking a post twice is an error,
// while UnlikePost tolerates a missing like.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return wrapNotFound(err, "Post", postID)
	}

	created, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !created {
		observability.RecordEngagement("post_like", "duplicate")
		return models.NewConflictError("Already liked")
	}
	observability.RecordEngagement("post_like", "created")
	return nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return wrapNotFound(err, "Post", postID)
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return models.NewInternalError(err)
	}
	observability.RecordEngagement("post_like", "removed")
	return nil
}
