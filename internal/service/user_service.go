package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/auth"
	"github.com/energyportfolio/crm-service/internal/model"
	"github.com/energyportfolio/crm-service/internal/repository"
)

// ActivationMailer sends the account activation link. Satisfied by
// mail.Mailer.
type ActivationMailer interface {
	SendActivation(toEmail, name, token string) error
}

type UserService struct {
	users  *repository.UserRepository
	tokens *auth.Manager
	mailer ActivationMailer
	log    zerolog.Logger
}

func NewUserService(users *repository.UserRepository, tokens *auth.Manager, mailer ActivationMailer, log zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, mailer: mailer, log: log}
}

// Login checks the credentials and returns a signed access token with the
// authenticated user. Inactive accounts cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidLogin
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrInvalidLogin
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidLogin
	}

	token, err := s.tokens.Issue(*user, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RegisterClientManager creates a disabled client-manager account and mails
// the activation link. The account stays inactive until the link is
// followed.
func (s *UserService) RegisterClientManager(ctx context.Context, email, password string, firstName, lastName *string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	activationToken := uuid.New()
	user := model.User{
		ID:              uuid.New(),
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		PasswordHash:    hash,
		Role:            model.RoleClientManager,
		IsActive:        false,
		ActivationToken: &activationToken,
		DateJoined:      now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	name := email
	if firstName != nil {
		name = *firstName
	}
	if err := s.mailer.SendActivation(email, name, activationToken.String()); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("activation email failed")
		return nil, err
	}
	return &user, nil
}

// Activate enables the account matching the token.
func (s *UserService) Activate(ctx context.Context, rawToken string) (*model.User, error) {
	token, err := uuid.Parse(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid activation link", ErrValidation)
	}
	user, err := s.users.Activate(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid activation link", ErrValidation)
		}
		return nil, err
	}
	s.log.Info().Str("email", user.Email).Msg("account activated")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListByRole is admin-only.
func (s *UserService) ListByRole(ctx context.Context, principal model.Principal, role model.Role) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.users.ListByRole(ctx, role)
}
