package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/places/pkg/apperr"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	ok, err := h.Compare("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Compare("secret1", "not-a-hash")
	assert.Error(t, err)
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	hash, err := h.Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultHashCost, cost)
}

func TestBcryptHasher_PasswordOver72Bytes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	// 40 runes, 80 bytes
	_, err := h.Hash(strings.Repeat("п", 40))
	require.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
