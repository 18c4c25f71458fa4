package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered user.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Image        string
	PlaceIDs     []uuid.UUID
	CreatedAt    time.Time
}
