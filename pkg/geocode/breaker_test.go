package geocode

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	calls  int
	coords Coordinates
	err    error
}

func (s *stubResolver) Resolve(context.Context, string) (Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

func TestBreakerResolver_PassesThrough(t *testing.T) {
	stub := &stubResolver{coords: Coordinates{Lat: 40.7484, Lng: -73.9857}}
	r := NewBreakerResolver("test", stub)

	got, err := r.Resolve(context.Background(), "20 W 34th St")
	require.NoError(t, err)
	assert.Equal(t, stub.coords, got)
}

func TestBreakerResolver_OpensOnTransportFailures(t *testing.T) {
	transport := errors.New("dial tcp: connection refused")
	stub := &stubResolver{err: transport}
	r := NewBreakerResolver("test", stub)

	for i := 0; i < 5; i++ {
		_, err := r.Resolve(context.Background(), "x")
		assert.ErrorIs(t, err, transport)
	}
	_, err := r.Resolve(context.Background(), "x")

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, stub.calls)
}

func TestBreakerResolver_NotFoundKeepsCircuitClosed(t *testing.T) {
	stub := &stubResolver{err: ErrAddressNotFound}
	r := NewBreakerResolver("test", stub)

	for i := 0; i < 10; i++ {
		_, err := r.Resolve(context.Background(), "nowhere")
		assert.ErrorIs(t, err, ErrAddressNotFound)
	}
	assert.Equal(t, 10, stub.calls)
}
