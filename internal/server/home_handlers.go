package server

import "github.com/gofiber/fiber/v2"

// Home handles GET / with the most recent posts.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postService.RecentPosts(c.UserContext(), s.config.HomepagePostLimit)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "home", fiber.Map{
		"Title": "Recent posts",
		"Posts": posts,
	})
}
