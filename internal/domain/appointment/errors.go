package appointment

import (
	"errors"
	"fmt"
	"time"
)

// ErrOverlap is returned by storage when the exclusion constraint over
// (barber_id, time range) rejects a write.
var ErrOverlap = errors.New("appointment overlaps an active booking")

// ===============================
// Booking conflict
// ===============================

type BookingConflictError struct {
	Conflict ConflictInfo
}

func (e *BookingConflictError) Error() string {
	c := e.Conflict
	if c.AppointmentID == 0 {
		return fmt.Sprintf("time_conflict: barber %d already booked", c.BarberID)
	}
	return fmt.Sprintf(
		"time_conflict: appointment %d (barber %d) from %s to %s",
		c.AppointmentID, c.BarberID,
		c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339),
	)
}

// Message is the human readable explanation shown to whoever tried to book.
func (e *BookingConflictError) Message() string {
	c := e.Conflict
	if c.AppointmentID == 0 {
		return "Horário não disponível."
	}
	msg := fmt.Sprintf("Horário não disponível. Conflito com agendamento das %s às %s",
		c.Start.Format("15:04"), c.End.Format("15:04"))
	if c.BarberName != "" {
		msg += " com " + c.BarberName
	}
	if c.ServiceName != "" {
		msg += " (" + c.ServiceName + ")"
	}
	return msg + "."
}

// ===============================
// Not found
// ===============================

type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s_not_found: %v", e.Entity, e.ID)
}

func (e *NotFoundError) Code() string {
	return e.Entity + "_not_found"
}

func ErrNotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ===============================
// Invalid transition
// ===============================

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: %s -> %s", e.From, e.To)
}

// ===============================
// Validation
// ===============================

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code
}

func ErrValidation(code, message string) error {
	return &ValidationError{Code: code, Message: message}
}

// ===============================
// Storage
// ===============================

// StorageError wraps an opaque repository failure. It is never retried here.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorage passes domain errors through untouched and wraps everything else.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		nf *NotFoundError
		bc *BookingConflictError
		it *InvalidTransitionError
		ve *ValidationError
		se *StorageError
	)
	switch {
	case errors.As(err, &nf), errors.As(err, &bc), errors.As(err, &it),
		errors.As(err, &ve), errors.As(err, &se), errors.Is(err, ErrOverlap):
		return err
	}
	return &StorageError{Op: op, Err: err}
}
