package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/auth"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/config"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/db/models"
	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/security"
)

type establishmentResolver interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Establishment, error)
}

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterInput creates an owner account. Registration is disabled in prod.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Session is the response for a successful login.
type Session struct {
	AccessToken     string     `json:"access_token"`
	UserID          uuid.UUID  `json:"user_id"`
	EstablishmentID *uuid.UUID `json:"establishment_id,omitempty"`
}

// Service exposes owner authentication.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Register(ctx context.Context, input RegisterInput) (*Session, error)
}

type service struct {
	users          UserRepository
	establishments establishmentResolver
	cfg            *config.Config
	now            func() time.Time
}

// NewService builds the auth service.
func NewService(users UserRepository, establishments establishmentResolver, cfg *config.Config, now func() time.Time) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if establishments == nil {
		return nil, fmt.Errorf("establishment resolver required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{users: users, establishments: establishments, cfg: cfg, now: now}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.mintSession(ctx, user)
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if s.cfg.App.IsProd() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "registration is disabled")
	}

	hash, err := security.HashPassword(input.Password, s.cfg.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	return s.mintSession(ctx, user)
}

func (s *service) mintSession(ctx context.Context, user *models.User) (*Session, error) {
	var establishmentID *uuid.UUID
	if establishment, err := s.establishments.GetByOwner(ctx, user.ID); err == nil {
		establishmentID = &establishment.ID
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	token, err := auth.MintAccessToken(s.cfg.JWT, s.now(), auth.AccessTokenPayload{
		UserID:          user.ID,
		EstablishmentID: establishmentID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &Session{
		AccessToken:     token,
		UserID:          user.ID,
		EstablishmentID: establishmentID,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
