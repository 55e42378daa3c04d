package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts. The listing is the caller's feed: posts
// from followed users plus their own. Anonymous callers get an empty list.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	return s.GetFeed(c)
}

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)

	posts, err := s.postService.ListFeed(c.Context(), viewerID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content  string `json:"content"`
		ImageURL string `json:"image"`
		VideoURL string `json:"video"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   currentUserID(c),
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	post, svcErr := s.postService.GetPost(c.Context(), id, viewerID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id (owner only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string  `json:"content"`
		ImageURL *string `json:"image"`
		VideoURL *string `json:"video"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, svcErr := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   id,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (owner only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.DeletePost(c.Context(), currentUserID(c), id); svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}
