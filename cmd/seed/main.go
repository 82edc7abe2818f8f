// seed crea un usuario administrador con todos los permisos, o promueve uno existente.
//
// Uso: go run ./cmd/seed <email> <password> [nombre]
// Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH, ...).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/mail"
	"github.com/jhoicas/storefront-api/internal/infrastructure/store"
	"github.com/jhoicas/storefront-api/pkg/config"
	"github.com/jhoicas/storefront-api/pkg/hash"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed <email> <password> [nombre]")
		os.Exit(2)
	}
	email, password := os.Args[1], os.Args[2]
	name := "Admin"
	if len(os.Args) > 3 {
		name = strings.Join(os.Args[3:], " ")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer st.Close()

	authUC := auth.NewAuthUseCase(
		st.Users,
		hash.NewBcrypt(cfg.Session.BcryptCost),
		mail.NewLogMailer(log),
		auth.SessionConfig{Secret: cfg.Session.Secret, Issuer: cfg.Session.Issuer, TTL: cfg.Session.TTL},
		auth.ResetConfig{FrontendURL: cfg.Frontend.URL, From: cfg.Mail.From},
		log,
	)

	var userID string
	res, err := authUC.Signup(ctx, dto.SignupRequest{Email: email, Password: password, Name: name})
	switch {
	case err == nil:
		userID = res.User.ID
		log.Info().Str("email", res.User.Email).Msg("usuario creado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		existing, err := st.Users.GetByEmail(ctx, entity.NormalizeEmail(email))
		if err != nil || existing == nil {
			log.Fatal().Err(err).Msg("buscar usuario existente")
		}
		userID = existing.ID
		log.Info().Str("email", existing.Email).Msg("usuario ya existía, se promueve")
	default:
		log.Fatal().Err(err).Msg("crear usuario")
	}

	if err := st.Users.UpdatePermissions(ctx, userID, entity.AllPermissions); err != nil {
		log.Fatal().Err(err).Msg("asignar permisos")
	}
	log.Info().Str("user_id", userID).Msg("permisos de administrador asignados")
}
