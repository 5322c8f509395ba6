package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

// LikePost handles POST /api/like/:id
// @Summary Like a post
// @Description Record a like on the post; liking twice is a no-op
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /like/{id} [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.Like(c.Context(), actorID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Liked successfully",
	})
}

// UnlikePost handles POST /api/unlike/:id
// @Summary Unlike a post
// @Description Remove the caller's like from the post
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{status=string,message=string}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /unlike/{id} [post]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.Unlike(c.Context(), actorID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Unliked Successfully",
	})
}

// CommentPost handles POST /api/comment/:id
// @Summary Comment on a post
// @Description Add a comment to the post; one comment per user per post
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body commentRequest true "Comment text"
// @Success 200 {object} object{status=string,message=string}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /comment/{id} [post]
func (s *Server) CommentPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.engagementService.Comment(c.Context(), actorID(c), postID, req.Comment); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "You have commented on this post",
	})
}
