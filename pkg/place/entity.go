package place

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/geocode"
)

// Place is a geotagged record owned by exactly one user.
type Place struct {
	ID          uuid.UUID
	Title       string
	Description string
	Address     string
	Location    geocode.Coordinates
	Image       string
	CreatorID   uuid.UUID
	CreatedAt   time.Time
}

var (
	ErrNotFound      = apperr.NotFound("Could not find a place for the provided id.")
	ErrOwnerNotFound = apperr.NotFound("Could not find user for provided id.")
	ErrForbidden     = apperr.Unauthorized("You are not allowed to modify this place.")
)

// Repository persists places.
type Repository interface {
	Create(ctx context.Context, p Place) error
	GetByID(ctx context.Context, id uuid.UUID) (Place, error)
	// ListByIDs returns the places in ids order, skipping ids that no longer exist.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Place, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, title, description string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Owners maintains the owning user's list of place ids.
type Owners interface {
	PlaceIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	AttachPlace(ctx context.Context, userID, placeID uuid.UUID) error
	DetachPlace(ctx context.Context, userID, placeID uuid.UUID) error
}

// Transactor runs fn as one unit of work: every repository call made with
// the ctx passed to fn commits together or not at all.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageStore removes stored images once their record is gone.
type ImageStore interface {
	Remove(path string) error
}
