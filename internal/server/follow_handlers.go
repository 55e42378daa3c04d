package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:userId/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	target, svcErr := s.followService.Follow(c.Context(), currentUserID(c), targetID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Now following " + target.Username,
	})
}

// UnfollowUser handles DELETE /api/users/:userId/follow. Unfollowing a user
// you never followed succeeds.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	target, svcErr := s.followService.Unfollow(c.Context(), currentUserID(c), targetID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(fiber.Map{
		"message": "Unfollowed " + target.Username,
	})
}
