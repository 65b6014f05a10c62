package appointment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput carries optional changes; nil fields are left untouched.
type UpdateAppointmentInput struct {
	Start     *time.Time
	BarberID  *uint
	ServiceID *uint
	ClientID  *uint
	Notes     *string
	Status    *domain.Status
}

// ======================================================
// EXECUTE
// ======================================================

// errBarberMoved means the appointment changed barber between the unlocked
// read and the serialized section.
var errBarberMoved = errors.New("appointment moved to another barber")

const maxUpdateAttempts = 3

type updateOutcome struct {
	updated      *domain.Appointment
	rescheduled  bool
	transitioned bool
	prevStatus   domain.Status
	prevStart    time.Time
	at           time.Time
}

// UpdateAppointment applies a reschedule (start, barber or service change) and
// then a status transition. Either may be absent.
func (s *SchedulingService) UpdateAppointment(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (ap *domain.Appointment, err error) {

	ctx, span := tracer.Start(ctx, "SchedulingService.UpdateAppointment")
	span.SetAttributes(attribute.Int64("appointment.id", int64(id)))
	defer func() { endSpan(span, err) }()

	if in.Notes != nil {
		if err := domain.ValidateNotes(*in.Notes); err != nil {
			return nil, err
		}
	}

	var out *updateOutcome
	for attempt := 1; ; attempt++ {
		out, err = s.updateOnce(ctx, id, in)
		if !errors.Is(err, errBarberMoved) || attempt == maxUpdateAttempts {
			break
		}
		s.logger.DebugContext(ctx, "appointment moved during update, retrying",
			"appointment_id", id,
			"attempt", attempt,
		)
	}
	if errors.Is(err, errBarberMoved) {
		return nil, domain.WrapStorage("update appointment", err)
	}
	if err != nil {
		return nil, err
	}
	updated := out.updated

	// --------------------------------------------------
	// 3️⃣ Eventos: remarcação antes da transição
	// --------------------------------------------------
	if out.rescheduled {
		ps := out.prevStart
		s.emit(ctx, domain.LifecycleEvent{
			Kind:           domain.EventRescheduled,
			Appointment:    *updated,
			PreviousStatus: out.prevStatus,
			PreviousStart:  &ps,
			OccurredAt:     out.at,
		})
	}
	if out.transitioned {
		s.emit(ctx, domain.LifecycleEvent{
			Kind:           domain.EventStatusChanged,
			Appointment:    *updated,
			PreviousStatus: out.prevStatus,
			OccurredAt:     out.at,
		})
	}

	s.logger.InfoContext(ctx, "appointment updated",
		"appointment_id", updated.ID,
		"rescheduled", out.rescheduled,
		"status", string(updated.Status),
		"previous_status", string(out.prevStatus),
	)

	return updated, nil
}

func (s *SchedulingService) updateOnce(
	ctx context.Context,
	id uint,
	in UpdateAppointmentInput,
) (*updateOutcome, error) {

	current, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStorage("find appointment", err)
	}

	// --------------------------------------------------
	// 1️⃣ Resolver referências alteradas (fora da seção crítica)
	// --------------------------------------------------
	targetBarber := current.BarberID
	if in.BarberID != nil && *in.BarberID != current.BarberID {
		b, err := s.resolveBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		targetBarber = b.ID
	}

	var terms *serviceTerms
	if in.ServiceID != nil && *in.ServiceID != current.ServiceID {
		if terms, err = s.snapshotService(ctx, *in.ServiceID); err != nil {
			return nil, err
		}
	}

	if in.ClientID != nil && *in.ClientID != current.ClientID {
		if _, err := s.resolveClient(ctx, *in.ClientID); err != nil {
			return nil, err
		}
	}

	if in.Status != nil && !in.Status.Valid() {
		return nil, &domain.InvalidTransitionError{From: current.Status, To: *in.Status}
	}

	// --------------------------------------------------
	// 2️⃣ Aplicar sob o lock do barbeiro atual e do destino
	// --------------------------------------------------
	out := &updateOutcome{at: s.now()}

	err = s.appointments.InBarberTransaction(ctx, []uint{current.BarberID, targetBarber}, func(ctx context.Context, tx domain.AppointmentStore) error {
		fresh, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		// barber changes only happen under the old barber's lock
		if fresh.BarberID != current.BarberID {
			return errBarberMoved
		}
		out.prevStatus = fresh.Status
		out.prevStart = fresh.Start

		start := fresh.Start
		if in.Start != nil {
			start = in.Start.In(s.loc)
		}
		serviceID, duration := fresh.ServiceID, fresh.DurationMin
		if terms != nil {
			serviceID, duration = terms.id, terms.durationMin
		}

		out.rescheduled = !start.Equal(fresh.Start) ||
			targetBarber != fresh.BarberID ||
			serviceID != fresh.ServiceID

		if out.rescheduled {
			if err := domain.Reschedule(fresh, targetBarber, serviceID, start, duration, out.at); err != nil {
				return err
			}
			if terms != nil {
				fresh.Price = terms.price
			}
			if err := s.checkConflict(ctx, tx, fresh); err != nil {
				return err
			}
		}

		if in.ClientID != nil {
			fresh.ClientID = *in.ClientID
		}
		if in.Notes != nil {
			fresh.Notes = *in.Notes
		}

		if in.Status != nil {
			if err := domain.Transition(fresh, *in.Status, out.at); err != nil {
				return err
			}
			out.transitioned = true
		}

		fresh.UpdatedAt = out.at
		if err := tx.Update(ctx, fresh); err != nil {
			return err
		}
		out.updated = fresh
		return nil
	})
	if errors.Is(err, errBarberMoved) {
		return nil, err
	}
	if err != nil {
		candidate := *current
		candidate.BarberID = targetBarber
		if in.Start != nil {
			candidate.Start = in.Start.In(s.loc)
		}
		if terms != nil {
			candidate.DurationMin = terms.durationMin
		}
		err = s.conflictError(ctx, &candidate, err)
		return nil, domain.WrapStorage("update appointment", err)
	}
	return out, nil
}

// UpdateStatus runs a single lifecycle transition.
func (s *SchedulingService) UpdateStatus(
	ctx context.Context,
	id uint,
	to domain.Status,
) (*domain.Appointment, error) {
	return s.UpdateAppointment(ctx, id, UpdateAppointmentInput{Status: &to})
}
