package server

import (
	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profiles/:id. Anonymous reads go through the
// cache since they render identically for every viewer.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, authenticated := s.optionalUserID(c); !authenticated {
		var user models.User
		cacheErr := cache.Aside(c.Context(), cache.UserKey(id), &user, cache.UserTTL, func() error {
			fetched, err := s.userService.GetProfile(c.Context(), id)
			if err != nil {
				return err
			}
			user = *fetched
			return nil
		})
		if cacheErr != nil {
			return respondServiceError(c, cacheErr)
		}
		return c.JSON(user)
	}

	user, err := s.userService.GetProfile(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /api/profiles/:id (owner only).
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Bio            *string `json:"bio"`
		Website        *string `json:"website"`
		Location       *string `json:"location"`
		ProfilePicture *string `json:"profile_picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, svcErr := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         currentUserID(c),
		TargetID:       id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Bio:            req.Bio,
		Website:        req.Website,
		Location:       req.Location,
		ProfilePicture: req.ProfilePicture,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.JSON(user)
}
