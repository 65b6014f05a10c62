package notification

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

type Sink interface {
	Notify(ctx context.Context, ev domain.LifecycleEvent) error
}

// Fanout delivers to every sink even when one of them fails.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, ev domain.LifecycleEvent) error {
	var errs []error
	for _, s := range f {
		if err := s.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
