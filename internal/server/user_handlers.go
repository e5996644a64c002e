package server

import (
	"fmt"

	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "users/index", fiber.Map{
		"Title": "Users",
		"Users": users,
	})
}

// NewUserForm handles GET /users/new
func (s *Server) NewUserForm(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "users/new", fiber.Map{"Title": "New user"})
}

// CreateUser handles POST /users/new
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var in service.UserInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	user, err := s.userService.CreateUser(c.UserContext(), in)
	if handled, err := s.formResult(c, "user_new", err, "/users/new"); handled || err != nil {
		return err
	}

	s.flash(c, flashSuccess, fmt.Sprintf("User %s added.", user.FullName()))
	return redirect(c, "/users")
}

// ShowUser handles GET /users/:id
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}
	user, err := s.userService.GetUserWithPosts(c.UserContext(), id)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "users/show", fiber.Map{
		"Title": user.FullName(),
		"User":  user,
	})
}

// EditUserForm handles GET /users/:id/edit
func (s *Server) EditUserForm(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}
	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "users/edit", fiber.Map{
		"Title": "Edit " + user.FullName(),
		"User":  user,
	})
}

// UpdateUser handles POST /users/:id/edit
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}

	var in service.UserInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.ErrBadRequest
	}

	user, err := s.userService.UpdateUser(c.UserContext(), id, in)
	if handled, err := s.formResult(c, "user_edit", err, fmt.Sprintf("/users/%d/edit", id)); handled || err != nil {
		return err
	}

	s.flash(c, flashSuccess, fmt.Sprintf("User %s edited.", user.FullName()))
	return redirect(c, "/users")
}

// DeleteUser handles POST /users/:id/delete
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}

	user, err := s.userService.DeleteUser(c.UserContext(), id)
	if _, err := s.formResult(c, "user_delete", err, ""); err != nil {
		return err
	}

	s.flash(c, flashSuccess, fmt.Sprintf("User %s deleted.", user.FullName()))
	return redirect(c, "/users")
}
