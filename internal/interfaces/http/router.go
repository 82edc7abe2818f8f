package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/storefront-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Schema        *graphql.Schema
	Log           *logger.Logger
	SessionSecret string
	SecureCookie  bool
	FrontendURL   string
	AppName       string
}

// NewApp construye la app Fiber con middlewares y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))
	// El frontend vive en otro origen y manda la cookie: origen explícito + credenciales.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     deps.FrontendURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,OPTIONS",
	}))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	gql := NewGraphQLHandler(deps.Schema, deps.Log, deps.SecureCookie)
	app.Post("/graphql", SessionMiddleware(deps.SessionSecret), gql.Handle)
}
