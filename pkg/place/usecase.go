package place

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/geocode"
	"github.com/artem13815/places/pkg/logging"
)

// UseCase encapsulates the place operations.
type UseCase interface {
	GetByID(ctx context.Context, id uuid.UUID) (Place, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Place, error)
	Create(ctx context.Context, in CreateInput) (Place, error)
	Update(ctx context.Context, in UpdateInput) (Place, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

type CreateInput struct {
	CreatorID   uuid.UUID
	Title       string
	Description string
	Address     string
	Image       string
}

type UpdateInput struct {
	CallerID    uuid.UUID
	PlaceID     uuid.UUID
	Title       string
	Description string
}

type service struct {
	places   Repository
	owners   Owners
	tx       Transactor
	geocoder geocode.Resolver
	images   ImageStore
}

func NewService(places Repository, owners Owners, tx Transactor, geocoder geocode.Resolver, images ImageStore) UseCase {
	return &service{places: places, owners: owners, tx: tx, geocoder: geocoder, images: images}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Place, error) {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Place{}, ErrNotFound
		}
		return Place{}, apperr.Internal("Something went wrong, could not find a place.", err)
	}
	return p, nil
}

// ListByUser returns the user's places in the order they were added. A known
// user without places yields an empty slice.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Place, error) {
	ids, err := s.owners.PlaceIDs(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, apperr.Internal("Fetching places failed, please try again later.", err)
	}
	if len(ids) == 0 {
		return []Place{}, nil
	}
	places, err := s.places.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Fetching places failed, please try again later.", err)
	}
	return places, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (Place, error) {
	coords, err := s.geocoder.Resolve(ctx, in.Address)
	if err != nil {
		if errors.Is(err, geocode.ErrAddressNotFound) {
			return Place{}, geocode.ErrAddressNotFound
		}
		return Place{}, apperr.Internal("Could not resolve the address, please try again later.", err)
	}

	p := Place{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Address:     strings.TrimSpace(in.Address),
		Location:    coords,
		Image:       in.Image,
		CreatorID:   in.CreatorID,
		CreatedAt:   time.Now().UTC(),
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.places.Create(ctx, p); err != nil {
			return err
		}
		return s.owners.AttachPlace(ctx, p.CreatorID, p.ID)
	})
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return Place{}, ErrOwnerNotFound
		}
		return Place{}, apperr.Internal("Creating place failed, please try again.", err)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, in UpdateInput) (Place, error) {
	p, err := s.GetByID(ctx, in.PlaceID)
	if err != nil {
		return Place{}, err
	}
	if p.CreatorID != in.CallerID {
		return Place{}, ErrForbidden
	}
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	if err := s.places.UpdateDetails(ctx, p.ID, p.Title, p.Description); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Place{}, ErrNotFound
		}
		return Place{}, apperr.Internal("Something went wrong, could not update place.", err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CreatorID != callerID {
		return ErrForbidden
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.places.Delete(ctx, p.ID); err != nil {
			return err
		}
		return s.owners.DetachPlace(ctx, p.CreatorID, p.ID)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return apperr.Internal("Something went wrong, could not delete place.", err)
	}

	// the record is gone; a leftover file is only logged
	if p.Image != "" {
		if err := s.images.Remove(p.Image); err != nil {
			logging.Warn().Err(err).Str("place_id", p.ID.String()).Str("image", p.Image).Msg("remove place image")
		}
	}
	return nil
}
