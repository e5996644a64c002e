package server

import (
	"encoding/json"
	"log/slog"
	"time"

	"blogly/internal/cache"
	"blogly/internal/config"
	"blogly/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
)

const (
	flashKey       = "_flashes"
	csrfFormField  = "_csrf"
	csrfContextKey = "csrf"
)

// Flash categories.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// redisStorage returns a Redis-backed fiber.Storage, or nil so Fiber falls back to memory.
func redisStorage(rdb *redis.Client, prefix string) fiber.Storage {
	if rdb == nil {
		return nil
	}
	return cache.NewStorage(rdb, prefix)
}

func newSessionStore(cfg *config.Config, rdb *redis.Client) *session.Store {
	return session.New(session.Config{
		Storage:        redisStorage(rdb, "blogly:session:"),
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:blogly_session",
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// flash queues a message for the next page render.
func (s *Server) flash(c *fiber.Ctx, category, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "session unavailable, dropping flash", slog.String("error", err.Error()))
		return
	}

	flashes := decodeFlashes(sess.Get(flashKey))
	flashes = append(flashes, Flash{Category: category, Message: message})
	raw, _ := json.Marshal(flashes)
	sess.Set(flashKey, string(raw))

	if err := sess.Save(); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to save flash", slog.String("error", err.Error()))
	}
}

// popFlashes returns and clears queued messages. Sessions without flashes are left untouched.
func (s *Server) popFlashes(c *fiber.Ctx) []Flash {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}

	flashes := decodeFlashes(sess.Get(flashKey))
	if len(flashes) == 0 {
		return nil
	}

	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to clear flashes", slog.String("error", err.Error()))
	}
	return flashes
}

func decodeFlashes(v any) []Flash {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}
