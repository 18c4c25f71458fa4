package auth

import (
	"context"

	"github.com/artem13815/places/pkg/apperr"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = apperr.NotFound("Could not find user.")
	ErrUserAlreadyExists  = apperr.Conflict("User exists already, please login instead.")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials, could not log you in.")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
}
