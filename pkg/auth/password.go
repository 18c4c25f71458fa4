package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/places/pkg/apperr"
)

// DefaultHashCost is the bcrypt work factor used for stored passwords.
const DefaultHashCost = 12

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = apperr.Validation("Invalid inputs passed, please check your data.")

type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare reports whether plain matches hash. A mismatch is (false, nil);
	// a malformed hash is an error.
	Compare(plain, hash string) (bool, error)
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
