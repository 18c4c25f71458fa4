package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/places/pkg/auth"
)

// ErrInvalidToken covers bad signatures, malformed tokens, expiry and issuer mismatch.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the caller identity next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Identity is what a verified token asserts about the caller.
type Identity struct {
	UserID string
	Email  string
}

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := g.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		UserID: user.ID.String(),
		Email:  user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier checks HS256 tokens signed with secret. An empty issuer skips
// the issuer check.
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

func (v *Verifier) Verify(tokenStr string) (Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
