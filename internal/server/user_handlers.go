package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follow/:id
// @Summary Follow a user
// @Description Follow the target user; both follower/following counters are updated
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 200 {object} object{status=string,message=string}
// @Failure 400 {object} object{status=string,message=string}
// @Router /follow/{id} [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.relationshipService.Follow(c.Context(), actorID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
	})
}

// UnfollowUser handles POST /api/unfollow/:id
// @Summary Unfollow a user
// @Description Remove the follow relationship and roll back both counters
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user ID"
// @Success 200 {object} object{status=string,message=string}
// @Failure 400 {object} object{status=string,message=string}
// @Router /unfollow/{id} [post]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.relationshipService.Unfollow(c.Context(), actorID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
	})
}

// DeactivateMe handles DELETE /api/user
// @Summary Deactivate the current account
// @Description Mark the authenticated user inactive; their token stops resolving immediately
// @Tags relationships
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} object{status=string,message=string}
// @Router /user [delete]
func (s *Server) DeactivateMe(c *fiber.Ctx) error {
	if err := s.userRepo.Deactivate(c.Context(), actorID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	c.ClearCookie(sessionCookieName)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMe handles GET /api/user
// @Summary Current user summary
// @Description Return the authenticated user's name and follower/following counts
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=string,data=object}
// @Failure 401 {object} object{status=string,message=string}
// @Router /user [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.relationshipService.Me(c.Context(), actorID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"User Name": user.FullName,
			"Followers": user.Counts.FollowedBy,
			"Following": user.Counts.Follows,
		},
	})
}
