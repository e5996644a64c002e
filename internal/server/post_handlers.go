package server

import (
	"fmt"

	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NewPostForm handles GET /users/:id/posts/new
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	userID, err := parseID(c, "User")
	if err != nil {
		return err
	}
	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/new", fiber.Map{
		"Title": "New post",
		"User":  user,
	})
}

// CreatePost handles POST /users/:id/posts/new
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := parseID(c, "User")
	if err != nil {
		return err
	}

	var in service.PostInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	post, err := s.postService.CreatePost(c.UserContext(), userID, in)
	if handled, err := s.formResult(c, "post_new", err, fmt.Sprintf("/users/%d/posts/new", userID)); handled || err != nil {
		return err
	}

	s.flash(c, flashSuccess, fmt.Sprintf("Post '%s' added.", post.Title))
	return redirect(c, fmt.Sprintf("/users/%d", userID))
}

// ShowPost handles GET /posts/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/show", fiber.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

// EditPostForm handles GET /posts/:id/edit
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return err
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "posts/edit", fiber.Map{
		"Title": "Edit " + post.Title,
		"Post":  post,
	})
}

// UpdatePost handles POST /posts/:id/edit
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return err
	}

	var in service.PostInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, in)
	if handled, err := s.formResult(c, "post_edit", err, fmt.Sprintf("/posts/%d/edit", id)); handled || err != nil {
		return err
	}

	s.flash(c, flashSuccess, fmt.Sprintf("Post '%s' edited.", post.Title))
	return redirect(c, fmt.Sprintf("/posts/%d", post.ID))
}

// DeletePost handles POST /posts/:id/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return err
	}

	post, err := s.postService.DeletePost(c.UserContext(), id)
	if _, err := s.formResult(c, "post_delete", err, ""); err != nil {
		return err
	}

	s.flash(c, flashSuccess, fmt.Sprintf("Post '%s' deleted.", post.Title))
	return redirect(c, fmt.Sprintf("/users/%d", post.UserID))
}
