package place

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/places/pkg/geocode"
)

// memStore implements Repository, Owners and Transactor over maps. WithinTx
// snapshots both maps and restores them when fn fails.
type memStore struct {
	mu     sync.Mutex
	places map[uuid.UUID]Place
	owners map[uuid.UUID][]uuid.UUID

	attachErr error
	deleteErr error
	updateErr error
}

func newMemStore(userIDs ...uuid.UUID) *memStore {
	s := &memStore{places: map[uuid.UUID]Place{}, owners: map[uuid.UUID][]uuid.UUID{}}
	for _, id := range userIDs {
		s.owners[id] = []uuid.UUID{}
	}
	return s
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	places := maps.Clone(s.places)
	owners := make(map[uuid.UUID][]uuid.UUID, len(s.owners))
	for k, v := range s.owners {
		owners[k] = slices.Clone(v)
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.places, s.owners = places, owners
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) Create(_ context.Context, p Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places[p.ID] = p
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.places[id]
	if !ok {
		return Place{}, ErrNotFound
	}
	return p, nil
}

func (s *memStore) ListByIDs(_ context.Context, ids []uuid.UUID) ([]Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Place, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.places[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memStore) UpdateDetails(_ context.Context, id uuid.UUID, title, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	p, ok := s.places[id]
	if !ok {
		return ErrNotFound
	}
	p.Title, p.Description = title, description
	s.places[id] = p
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.places[id]; !ok {
		return ErrNotFound
	}
	delete(s.places, id)
	return nil
}

func (s *memStore) PlaceIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.owners[userID]
	if !ok {
		return nil, ErrOwnerNotFound
	}
	return slices.Clone(ids), nil
}

func (s *memStore) AttachPlace(_ context.Context, userID, placeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attachErr != nil {
		return s.attachErr
	}
	ids, ok := s.owners[userID]
	if !ok {
		return ErrOwnerNotFound
	}
	s.owners[userID] = append(ids, placeID)
	return nil
}

func (s *memStore) DetachPlace(_ context.Context, userID, placeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	ids, ok := s.owners[userID]
	if !ok {
		return ErrOwnerNotFound
	}
	s.owners[userID] = slices.DeleteFunc(ids, func(id uuid.UUID) bool { return id == placeID })
	return nil
}

type fakeGeocoder struct {
	coords geocode.Coordinates
	err    error
}

func (f fakeGeocoder) Resolve(context.Context, string) (geocode.Coordinates, error) {
	return f.coords, f.err
}

type fakeImages struct {
	removed []string
	err     error
}

func (f *fakeImages) Remove(path string) error {
	f.removed = append(f.removed, path)
	return f.err
}

var errBoom = errors.New("boom")
