package server

import (
	"errors"
	"log/slog"
	"strconv"

	"blogly/internal/middleware"
	"blogly/internal/models"
	"blogly/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts the :id route parameter as a positive uint.
// Anything else is a missing page, not a bad request.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError(resource, raw)
	}
	return uint(id), nil
}

// render executes a page template inside the base layout with flashes and the CSRF token bound.
func (s *Server) render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = s.popFlashes(c)
	if token, ok := c.Locals(csrfContextKey).(string); ok {
		data["CSRFToken"] = token
	}
	return c.Status(status).Render(name, data)
}

// redirect sends a 303 so browsers follow POSTs with a GET.
func redirect(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// formResult records the form outcome, flashes validation failures and redirects back to the form.
// It returns handled=false when err is not a validation error, so the caller can return it.
func (s *Server) formResult(c *fiber.Ctx, form string, err error, back string) (handled bool, result error) {
	if err == nil {
		observability.RecordForm(form, observability.OutcomeSuccess)
		return false, nil
	}

	if models.IsValidation(err) {
		observability.RecordForm(form, observability.OutcomeInvalid)
		s.flash(c, flashError, err.Error())
		return true, redirect(c, back)
	}

	if !models.IsNotFound(err) {
		observability.RecordForm(form, observability.OutcomeError)
	}
	return false, err
}

// errorHandler renders NOT_FOUND as the 404 page and everything else as the error page.
// A known path under the wrong method is treated as missing.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong on our end. Please try again."

	var fiberErr *fiber.Error
	var appErr *models.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Code == models.CodeNotFound:
		status = fiber.StatusNotFound
		message = appErr.Message
	case errors.As(err, &fiberErr):
		switch fiberErr.Code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			status = fiber.StatusNotFound
			message = ""
		default:
			status = fiberErr.Code
			message = fiberErr.Message
		}
	}

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	template := "500"
	if status == fiber.StatusNotFound {
		template = "404"
	}

	data := fiber.Map{
		"Title":   strconv.Itoa(status),
		"Status":  status,
		"Message": message,
	}
	if renderErr := s.render(c, status, template, data); renderErr != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to render error page", slog.String("error", renderErr.Error()))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(status).SendString(message)
	}
	return nil
}
