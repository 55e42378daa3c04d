package server

import (
	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/posts/:postId/like. Liking an already-liked
// post is an error; unliking an unliked post is not.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.LikePost(c.Context(), currentUserID(c), postID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post liked",
	})
}

// UnlikePost handles DELETE /api/posts/:postId/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.UnlikePost(c.Context(), currentUserID(c), postID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "Post unliked",
	})
}

// LikeComment handles POST /api/comments/:commentId/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.LikeComment(c.Context(), currentUserID(c), commentID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment liked",
	})
}

// UnlikeComment handles DELETE /api/comments/:commentId/like
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.UnlikeComment(c.Context(), currentUserID(c), commentID); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "Comment unliked",
	})
}
