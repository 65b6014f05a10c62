package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint
	Start     time.Time
	Notes     string
}

// ======================================================
// EXECUTE
// ======================================================

// CreateAppointment books on behalf of staff. Business hours are not enforced here.
func (s *SchedulingService) CreateAppointment(
	ctx context.Context,
	in CreateAppointmentInput,
) (ap *domain.Appointment, err error) {

	ctx, span := tracer.Start(ctx, "SchedulingService.CreateAppointment")
	span.SetAttributes(
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.Int64("service.id", int64(in.ServiceID)),
	)
	defer func() { endSpan(span, err) }()

	if in.Start.IsZero() {
		return nil, domain.ErrValidation("invalid_start", "Horário inicial inválido.")
	}

	barber, err := s.resolveBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	return s.book(ctx, barber, client, in.ServiceID, in.Start, in.Notes)
}

// book is the shared insert path of staff and public bookings.
func (s *SchedulingService) book(
	ctx context.Context,
	barber *domain.Barber,
	client *domain.Client,
	serviceID uint,
	start time.Time,
	notes string,
) (*domain.Appointment, error) {

	if err := domain.ValidateNotes(notes); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Snapshot da duração e do preço do serviço
	// --------------------------------------------------
	terms, err := s.snapshotService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ap := &domain.Appointment{
		ClientID:    client.ID,
		BarberID:    barber.ID,
		ServiceID:   terms.id,
		Start:       start.In(s.loc),
		DurationMin: terms.durationMin,
		Price:       terms.price,
		Status:      domain.InitialStatus(),
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// --------------------------------------------------
	// 2️⃣ Conflito + inserção serializados por barbeiro
	// --------------------------------------------------
	err = s.appointments.InBarberTransaction(ctx, []uint{barber.ID}, func(ctx context.Context, tx domain.AppointmentStore) error {
		if err := s.checkConflict(ctx, tx, ap); err != nil {
			return err
		}
		return tx.Insert(ctx, ap)
	})
	if err != nil {
		err = s.conflictError(ctx, ap, err)
		s.logger.WarnContext(ctx, "appointment not created",
			"barber_id", barber.ID,
			"start_time", ap.Start,
			"err", err,
		)
		return nil, domain.WrapStorage("create appointment", err)
	}

	s.logger.InfoContext(ctx, "appointment created",
		"appointment_id", ap.ID,
		"barber_id", ap.BarberID,
		"client_id", ap.ClientID,
		"start_time", ap.Start,
	)

	// --------------------------------------------------
	// 3️⃣ Evento
	// --------------------------------------------------
	s.emit(ctx, domain.LifecycleEvent{
		Kind:        domain.EventCreated,
		Appointment: *ap,
		OccurredAt:  now,
	})

	return ap, nil
}
