package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:postId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	comments, svcErr := s.commentService.ListComments(c.Context(), postID, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	comment, svcErr := s.commentService.GetComment(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id (owner only)
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id (owner only)
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.DeleteComment(c.Context(), currentUserID(c), id); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
