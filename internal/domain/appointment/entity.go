package appointment

import (
	"time"
	"unicode/utf8"
)

// MaxNotesLength matches the notes column width.
const MaxNotesLength = 255

// Appointment is the value object the engine reasons about. DurationMin and
// Price are the service terms captured at booking time; they are not
// re-derived from the catalog.
type Appointment struct {
	ID uint

	ClientID  uint
	BarberID  uint
	ServiceID uint

	Start       time.Time
	DurationMin int
	Price       float64

	Status Status
	Notes  string

	CancelledAt *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Appointment) End() time.Time {
	return a.Start.Add(time.Duration(a.DurationMin) * time.Minute)
}

func (a Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMin) * time.Minute
}

// ValidateNotes counts characters, not bytes.
func ValidateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return ErrValidation("notes_too_long", "Observações devem ter no máximo 255 caracteres.")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// Transition aplica uma mudança de status validada pela tabela de transições.
func Transition(ap *Appointment, to Status, now time.Time) error {
	if err := CanTransition(ap.Status, to); err != nil {
		return err
	}

	ap.Status = to
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	ap.UpdatedAt = now
	return nil
}

// Reschedule moves a non-terminal appointment. Conflict validation is the caller's job.
func Reschedule(ap *Appointment, barberID, serviceID uint, start time.Time, durationMin int, now time.Time) error {
	if ap.Status.IsTerminal() {
		return ErrValidation("not_reschedulable", "Agendamento finalizado não pode ser remarcado.")
	}
	if durationMin <= 0 {
		return ErrValidation("invalid_duration", "Duração do serviço inválida.")
	}

	ap.BarberID = barberID
	ap.ServiceID = serviceID
	ap.Start = start
	ap.DurationMin = durationMin
	ap.UpdatedAt = now
	return nil
}
