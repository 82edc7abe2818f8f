package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/pkg/jwt"
)

// SessionCookie nombre de la cookie de sesión.
const SessionCookie = "token"

// LocalUserID key en c.Locals para el usuario autenticado.
const LocalUserID = "user_id"

// SessionMiddleware lee el token de la cookie (o de Authorization: Bearer, para clientes
// que no son navegador) y deja el userID en c.Locals. Nunca corta la petición: sin token
// o con uno inválido la petición sigue como anónima y cada resolver decide.
func SessionMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			tokenString = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if tokenString == "" {
			return c.Next()
		}
		userID, err := jwt.Parse(secret, tokenString)
		if err != nil {
			return c.Next()
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID devuelve el UserID del contexto ("" si la petición es anónima).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
