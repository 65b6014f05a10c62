package appointment

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// GetAvailability lists every slot of the barber's business day for the given
// service. Storage is read on every call.
func (s *SchedulingService) GetAvailability(
	ctx context.Context,
	barberID uint,
	date time.Time,
	serviceID uint,
) (slots []domain.TimeSlot, err error) {

	ctx, span := tracer.Start(ctx, "SchedulingService.GetAvailability")
	span.SetAttributes(
		attribute.Int64("barber.id", int64(barberID)),
		attribute.Int64("service.id", int64(serviceID)),
		attribute.String("date", date.Format("2006-01-02")),
	)
	defer func() { endSpan(span, err) }()

	if _, err := s.resolveBarber(ctx, barberID); err != nil {
		return nil, err
	}
	svc, err := s.resolveService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	day := domain.DayStart(date, s.loc)

	hours, err := s.hours.HoursFor(ctx, barberID, day)
	if err != nil {
		return nil, domain.WrapStorage("business hours", err)
	}
	if hours.Closed {
		return []domain.TimeSlot{}, nil
	}

	busy, err := s.appointments.FindActiveByBarberAndDate(ctx, barberID, day)
	if err != nil {
		return nil, domain.WrapStorage("find active appointments", err)
	}

	req := domain.SlotRequest{
		BarberID:           barberID,
		Date:               day,
		GranularityMin:     s.slotMinutes,
		Hours:              hours,
		ServiceDurationMin: svc.DurationMin,
	}

	slots = slices.Collect(domain.ComputeSlots(req, busy, s.now()))
	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	return slots, nil
}
