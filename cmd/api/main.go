package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/infrastructure/mail"
	"github.com/jhoicas/storefront-api/internal/infrastructure/store"
	"github.com/jhoicas/storefront-api/internal/interfaces/graph"
	httpRouter "github.com/jhoicas/storefront-api/internal/interfaces/http"
	"github.com/jhoicas/storefront-api/pkg/config"
	"github.com/jhoicas/storefront-api/pkg/hash"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// @title        Storefront API
// @version      1.0
// @description  API GraphQL de la tienda: cuentas, catálogo, permisos y carrito.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.Session.TTL == 0 {
		log.Warn().Msg("SESSION_TTL_HOURS=0: los tokens de sesión no expiran y no hay revocación")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer st.Close()

	if cfg.Mail.Host == "" {
		log.Warn().Msg("MAIL_HOST vacío: los correos de recuperación solo se registran en el log")
	}
	mailer := mail.New(cfg.Mail, log.Component("mail"))

	authUC := auth.NewAuthUseCase(
		st.Users,
		hash.NewBcrypt(cfg.Session.BcryptCost),
		mailer,
		auth.SessionConfig{
			Secret: cfg.Session.Secret,
			Issuer: cfg.Session.Issuer,
			TTL:    cfg.Session.TTL,
		},
		auth.ResetConfig{
			FrontendURL: cfg.Frontend.URL,
			From:        cfg.Mail.From,
		},
		log.Component("auth"),
	)
	itemUC := usecase.NewItemUseCase(st.Items, st.Users)
	cartUC := usecase.NewCartUseCase(st.Cart, st.Items, st.Users)

	schema, err := graph.NewSchema(graph.NewResolver(authUC, itemUC, cartUC, log.Component("graphql")))
	if err != nil {
		log.Fatal().Err(err).Msg("schema GraphQL")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		Schema:        schema,
		Log:           log.Component("http"),
		SessionSecret: cfg.Session.Secret,
		SecureCookie:  cfg.Session.CookieSecure,
		FrontendURL:   cfg.Frontend.URL,
		AppName:       cfg.App.Name,
	})

	// Swagger UI: http://localhost:<port>/docs
	specPath, err := swaggerSpecFile()
	if err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	} else {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specPath,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(app, cfg.HTTP.Addr(), quit, 10*time.Second); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP")
	}
	log.Info().Msg("aplicación detenida")
}
