package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Create a new post owned by the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string} true "Post content"
// @Success 201 {object} object{status=string,data=object}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 401 {object} object{status=string,message=string}
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      actorID(c),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   newPostResponse(post, false),
	})
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Description Fetch a single post with owner summary, comments and like count
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{status=string,data=object}
// @Failure 404 {object} object{status=string,message=string}
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   newPostResponse(post, true),
	})
}

// GetAllPosts handles GET /api/posts/all_posts
// @Summary List the caller's posts
// @Description Return every post of the authenticated user, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=string,results=int,data=[]object}
// @Failure 401 {object} object{status=string,message=string}
// @Router /posts/all_posts [get]
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.postService.GetUserPosts(c.Context(), actorID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// The caller is the owner, so the owner field is excluded from each post.
	data := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		data = append(data, newPostResponse(post, false))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"results": len(data),
		"data":    data,
	})
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post
// @Description Permanently remove a post; only its owner may do this
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 400 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), actorID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
