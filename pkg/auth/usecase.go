package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/places/pkg/apperr"
)

// AuthUseCase describes registration, login and the public user listing.
type AuthUseCase interface {
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	List(ctx context.Context) ([]User, error)
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, ErrUserAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return AuthResult{}, apperr.Internal("Signing up failed, please try again later.", err)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, ErrPasswordTooLong) {
		return AuthResult{}, ErrPasswordTooLong
	}
	if err != nil {
		return AuthResult{}, apperr.Internal("Could not create user, please try again.", err)
	}

	user := User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Image:        in.Image,
		PlaceIDs:     []uuid.UUID{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// the unique index may still catch a concurrent signup
		if errors.Is(err, ErrUserAlreadyExists) {
			return AuthResult{}, ErrUserAlreadyExists
		}
		return AuthResult{}, apperr.Internal("Signing up failed, please try again later.", err)
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, apperr.Internal("Signing up failed, please try again later.", err)
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, apperr.Internal("Logging in failed, please try again later.", err)
	}
	ok, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, apperr.Internal("Could not log you in, please check your credentials and try again.", err)
	}
	if !ok {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, apperr.Internal("Logging in failed, please try again later.", err)
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Fetching users failed, please try again later.", err)
	}
	return users, nil
}
