package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report maps checker names to "ok" or the failure text.
type Report map[string]string

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready runs every checker. The error names the first failing one.
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) (Report, error) {
	report := make(Report, len(s.checkers))
	var first error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			report[ch.Name()] = err.Error()
			if first == nil {
				first = fmt.Errorf("%s: %w", ch.Name(), err)
			}
			continue
		}
		report[ch.Name()] = "ok"
	}
	return report, first
}
