package geocode

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/artem13815/places/pkg/logging"
)

// BreakerResolver fails fast while the provider keeps failing at the
// transport level. Unresolvable addresses do not count as failures.
type BreakerResolver struct {
	next Resolver
	cb   *gobreaker.CircuitBreaker[Coordinates]
}

// NewBreakerResolver opens after 5 consecutive transport failures and probes
// again after 30 seconds.
func NewBreakerResolver(name string, next Resolver) *BreakerResolver {
	cb := gobreaker.NewCircuitBreaker[Coordinates](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrAddressNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("geocoder circuit state changed")
		},
	})
	return &BreakerResolver{next: next, cb: cb}
}

func (b *BreakerResolver) Resolve(ctx context.Context, address string) (Coordinates, error) {
	return b.cb.Execute(func() (Coordinates, error) {
		return b.next.Resolve(ctx, address)
	})
}
