package geocode

import (
	"context"

	"github.com/artem13815/places/pkg/apperr"
)

// ErrAddressNotFound means the provider could not place the address. It is
// a client input problem, hence a validation-kind error.
var ErrAddressNotFound = apperr.Validation("Could not find location for the specified address.")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resolver translates a free-text address into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}
