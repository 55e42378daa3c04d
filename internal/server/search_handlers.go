package server

import (
	"github.com/gofiber/fiber/v2"
)

// SearchUsers handles GET /api/search/users?query=...
// A blank query returns an empty list.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("query")
	p := parsePagination(c, 20)

	users, err := s.userService.SearchUsers(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}
