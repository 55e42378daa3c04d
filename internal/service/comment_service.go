package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

const maxCommentLen = 10000

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, wrapNotFound(err, "Post", in.PostID)
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetComment(ctx, comment.ID, in.UserID)
}

func (s *CommentService) GetComment(ctx context.Context, id uint, viewerID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, wrapNotFound(err, "Comment", id)
	}
	return comment, nil
}

// ListComments returns the comments on a post in conversation order. A missing
// post yields an empty list; only comment creation checks post existence.
func (s *CommentService) ListComments(ctx context.Context, postID uint, viewerID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID, in.UserID)
	if err != nil {
		return nil, wrapNotFound(err, "Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetComment(ctx, comment.ID, in.UserID)
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return wrapNotFound(err, "Comment", commentID)
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// LikeComment mirrors post likes: duplicates are an error, removal is not.
func (s *CommentService) LikeComment(ctx context.Context, userID, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return wrapNotFound(err, "Comment", commentID)
	}

	created, err := s.commentRepo.Like(ctx, userID, commentID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !created {
		observability.RecordEngagement("comment_like", "duplicate")
		return models.NewConflictError("Already liked")
	}
	observability.RecordEngagement("comment_like", "created")
	return nil
}

func (s *CommentService) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return wrapNotFound(err, "Comment", commentID)
	}
	if err := s.commentRepo.Unlike(ctx, userID, commentID); err != nil {
		return models.NewInternalError(err)
	}
	observability.RecordEngagement("comment_like", "removed")
	return nil
}
