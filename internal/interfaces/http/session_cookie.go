package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/interfaces/graph"
)

// sessionMaxAge un año, en segundos.
const sessionMaxAge = 365 * 24 * 60 * 60

var _ graph.SessionWriter = (*cookieSession)(nil)

// cookieSession acumula lo que piden los resolvers (que pueden correr en paralelo)
// y lo escribe como Set-Cookie después de ejecutar la operación.
type cookieSession struct {
	mu      sync.Mutex
	secure  bool
	token   string
	set     bool
	cleared bool
}

func (s *cookieSession) SetSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set, s.cleared = token, true, false
}

func (s *cookieSession) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set, s.cleared = "", false, true
}

func (s *cookieSession) apply(c *fiber.Ctx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.set:
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    s.token,
			Path:     "/",
			MaxAge:   sessionMaxAge,
			HTTPOnly: true,
			Secure:   s.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	case s.cleared:
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   s.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
