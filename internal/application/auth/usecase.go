package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/ports"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
	"github.com/jhoicas/storefront-api/pkg/hash"
	"github.com/jhoicas/storefront-api/pkg/jwt"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// SessionConfig firma de tokens de sesión. TTL 0 = sin exp.
type SessionConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// ResetConfig datos del correo de recuperación.
type ResetConfig struct {
	FrontendURL string
	From        string
}

const resetSubject = "Your Password Reset Token"

// AuthUseCase casos de uso de cuenta: signup, signin, recuperación de contraseña,
// permisos y lecturas de usuarios.
type AuthUseCase struct {
	users   repository.UserRepository
	hasher  ports.PasswordHasher
	mailer  ports.Mailer
	session SessionConfig
	reset   ResetConfig
	log     *logger.Logger
	now     func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher ports.PasswordHasher,
	mailer ports.Mailer,
	session SessionConfig,
	reset ResetConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:   users,
		hasher:  hasher,
		mailer:  mailer,
		session: session,
		reset:   reset,
		log:     log,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests de expiración).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Signup crea el usuario con permiso USER y abre sesión. El email se guarda en minúsculas.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SessionResult, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	digest, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Permissions:  []entity.Permission{entity.PermissionUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// La sesión se firma antes de guardar: si falla, no queda un usuario huérfano.
	res, err := uc.openSession(user)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return res, nil
}

// Signin verifica email/password y abre sesión.
func (uc *AuthUseCase) Signin(ctx context.Context, in dto.SigninRequest) (*dto.SessionResult, error) {
	user, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidPassword
	}
	return uc.openSession(user)
}

// RequestReset guarda un token nuevo (pisa el anterior) y manda el enlace por correo.
// Un fallo de envío se registra pero no hace fallar la operación.
func (uc *AuthUseCase) RequestReset(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	token, expiry, err := GenerateResetToken(uc.now())
	if err != nil {
		return err
	}
	if err := uc.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	msg := ports.Email{
		To:      user.Email,
		From:    uc.reset.From,
		Subject: resetSubject,
		HTML:    resetEmailHTML(uc.resetLink(token)),
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo enviar el correo de recuperación")
	}
	return nil
}

// ResetPassword valida confirmación y token, cambia el password y abre sesión.
// El token se consume en la misma sentencia que cambia el password: solo un uso gana.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (*dto.SessionResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	now := uc.now()
	user, err := uc.users.GetByResetToken(ctx, in.ResetToken, now)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	digest, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	ok, err := uc.users.ConsumeResetToken(ctx, user.ID, in.ResetToken, now, digest)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	user.PasswordHash = digest
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	return uc.openSession(user)
}

// UpdatePermissions requiere ADMIN o PERMISSIONUPDATE en el llamador.
func (uc *AuthUseCase) UpdatePermissions(ctx context.Context, viewerID string, in dto.UpdatePermissionsRequest) (*entity.User, error) {
	viewer, err := uc.requireViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if err := entity.CheckPermission(viewer, entity.PermissionAdmin, entity.PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	perms, err := entity.ParsePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.users.UpdatePermissions(ctx, in.UserID, perms); err != nil {
		return nil, err
	}
	return uc.users.GetByID(ctx, in.UserID)
}

// Me devuelve el usuario de la sesión; nil sin sesión o si el usuario ya no existe.
func (uc *AuthUseCase) Me(ctx context.Context, viewerID string) (*entity.User, error) {
	if viewerID == "" {
		return nil, nil
	}
	return uc.users.GetByID(ctx, viewerID)
}

// Users lista todos los usuarios; requiere ADMIN o PERMISSIONUPDATE.
func (uc *AuthUseCase) Users(ctx context.Context, viewerID string) ([]*entity.User, error) {
	viewer, err := uc.requireViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if err := entity.CheckPermission(viewer, entity.PermissionAdmin, entity.PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	return uc.users.List(ctx)
}

// GetUser lectura directa por ID (owner de un item, dueño de un cart item).
func (uc *AuthUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return uc.users.GetByID(ctx, id)
}

// requireViewer resuelve el usuario de la sesión o devuelve ErrNotAuthenticated.
func (uc *AuthUseCase) requireViewer(ctx context.Context, viewerID string) (*entity.User, error) {
	if viewerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	viewer, err := uc.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return viewer, nil
}

// hashPassword trata el límite de 72 bytes de bcrypt como error de entrada, no interno.
func (uc *AuthUseCase) hashPassword(plaintext string) (string, error) {
	digest, err := uc.hasher.Hash(plaintext)
	if errors.Is(err, hash.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password too long", domain.ErrInvalidInput)
	}
	return digest, err
}

func (uc *AuthUseCase) openSession(user *entity.User) (*dto.SessionResult, error) {
	token, err := jwt.Generate(uc.session.Secret, user.ID, uc.session.Issuer, uc.session.TTL)
	if err != nil {
		return nil, fmt.Errorf("firmar sesión: %w", err)
	}
	return &dto.SessionResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) resetLink(token string) string {
	return uc.reset.FrontendURL + "/reset?resetToken=" + url.QueryEscape(token)
}

func resetEmailHTML(link string) string {
	href := html.EscapeString(link)
	return `<div style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">` +
		`<h2>Hello There!</h2>` +
		`<p>Your Password Reset Token is here!</p>` +
		`<p><a href="` + href + `">Click Here to Reset</a></p>` +
		`</div>`
}
