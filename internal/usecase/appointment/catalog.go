package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

func (s *SchedulingService) ListServices(ctx context.Context) ([]domain.Service, error) {
	svcs, err := s.services.ListActive(ctx)
	if err != nil {
		return nil, domain.WrapStorage("list services", err)
	}
	return svcs, nil
}

func (s *SchedulingService) ListBarbers(ctx context.Context) ([]domain.Barber, error) {
	barbers, err := s.barbers.ListBarbers(ctx)
	if err != nil {
		return nil, domain.WrapStorage("list barbers", err)
	}
	return barbers, nil
}

// DaySchedule is one materialized day of business hours.
type DaySchedule struct {
	Date       time.Time
	Weekday    time.Weekday
	Closed     bool
	Open       time.Time
	Close      time.Time
	LunchStart time.Time
	LunchEnd   time.Time
}

// BusinessHours returns the schedule for the seven days starting at from.
// barberID zero yields the shop default.
func (s *SchedulingService) BusinessHours(
	ctx context.Context,
	barberID uint,
	from time.Time,
) ([]DaySchedule, error) {

	day := domain.DayStart(from, s.loc)

	out := make([]DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		d := day.AddDate(0, 0, i)
		h, err := s.hours.HoursFor(ctx, barberID, d)
		if err != nil {
			return nil, domain.WrapStorage("business hours", err)
		}
		out = append(out, DaySchedule{
			Date:       d,
			Weekday:    d.Weekday(),
			Closed:     h.Closed,
			Open:       h.Open,
			Close:      h.Close,
			LunchStart: h.LunchStart,
			LunchEnd:   h.LunchEnd,
		})
	}
	return out, nil
}
