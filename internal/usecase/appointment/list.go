package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// AppointmentDetails is an appointment with the names a calendar view shows.
type AppointmentDetails struct {
	domain.Appointment

	BarberName  string
	ClientName  string
	ServiceName string
}

// ListByDate returns every appointment (any status) starting on the calendar
// day of date. barberID zero lists all barbers.
func (s *SchedulingService) ListByDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]AppointmentDetails, error) {

	start := domain.DayStart(date, s.loc)
	return s.listPeriod(ctx, barberID, start, start.AddDate(0, 0, 1))
}

func (s *SchedulingService) ListByMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month time.Month,
) ([]AppointmentDetails, error) {

	if month < time.January || month > time.December {
		return nil, domain.ErrValidation("invalid_month", "Mês inválido.")
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return s.listPeriod(ctx, barberID, start, start.AddDate(0, 1, 0))
}

// GetAppointment returns one appointment with display names.
func (s *SchedulingService) GetAppointment(ctx context.Context, id uint) (*AppointmentDetails, error) {
	ap, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("find appointment", err)
	}
	out := s.describe(ctx, []domain.Appointment{*ap})
	return &out[0], nil
}

func (s *SchedulingService) listPeriod(
	ctx context.Context,
	barberID uint,
	start, end time.Time,
) ([]AppointmentDetails, error) {

	aps, err := s.appointments.ListForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, domain.WrapStorage("list appointments", err)
	}
	return s.describe(ctx, aps), nil
}

// describe resolves names once per id. Missing references leave names empty.
func (s *SchedulingService) describe(ctx context.Context, aps []domain.Appointment) []AppointmentDetails {
	barbers := map[uint]string{}
	clients := map[uint]string{}
	services := map[uint]string{}

	out := make([]AppointmentDetails, 0, len(aps))
	for _, ap := range aps {
		d := AppointmentDetails{Appointment: ap}
		d.Start = ap.Start.In(s.loc)

		name, ok := barbers[ap.BarberID]
		if !ok {
			if b, err := s.barbers.GetBarber(ctx, ap.BarberID); err == nil {
				name = b.Name
			}
			barbers[ap.BarberID] = name
		}
		d.BarberName = name

		name, ok = clients[ap.ClientID]
		if !ok {
			if c, err := s.clients.FindByID(ctx, ap.ClientID); err == nil {
				name = c.Name
			}
			clients[ap.ClientID] = name
		}
		d.ClientName = name

		name, ok = services[ap.ServiceID]
		if !ok {
			if svc, err := s.services.GetService(ctx, ap.ServiceID); err == nil {
				name = svc.Name
			}
			services[ap.ServiceID] = name
		}
		d.ServiceName = name

		out = append(out, d)
	}
	return out
}
