package appointment

import (
	"context"
	"time"
)

// ConflictInfo identifies the existing appointment a candidate collides with.
// Names are filled in by the scheduling service when available.
type ConflictInfo struct {
	AppointmentID uint      `json:"appointment_id,omitempty"`
	BarberID      uint      `json:"barber_id"`
	BarberName    string    `json:"barber_name,omitempty"`
	ClientID      uint      `json:"client_id,omitempty"`
	ClientName    string    `json:"client_name,omitempty"`
	ServiceID     uint      `json:"service_id,omitempty"`
	ServiceName   string    `json:"service_name,omitempty"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// Overlaps compares half-open intervals; touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindConflict scans existing for the earliest active appointment overlapping
// [start, end), ignoring excludeID (zero excludes nothing).
func FindConflict(existing []Appointment, start, end time.Time, excludeID uint) *ConflictInfo {
	var found *Appointment
	for i := range existing {
		ap := &existing[i]
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !ap.Status.IsActive() {
			continue
		}
		if !Overlaps(start, end, ap.Start, ap.End()) {
			continue
		}
		if found == nil || ap.Start.Before(found.Start) {
			found = ap
		}
	}
	if found == nil {
		return nil
	}
	return &ConflictInfo{
		AppointmentID: found.ID,
		BarberID:      found.BarberID,
		ClientID:      found.ClientID,
		ServiceID:     found.ServiceID,
		Start:         found.Start,
		End:           found.End(),
	}
}

// ===============================
// Detector
// ===============================

type ConflictDetector struct {
	store AppointmentStore
	loc   *time.Location
}

func NewConflictDetector(store AppointmentStore, loc *time.Location) *ConflictDetector {
	if loc == nil {
		loc = time.UTC
	}
	return &ConflictDetector{store: store, loc: loc}
}

// HasConflict fetches the barber's active appointments for every calendar day the
// candidate touches and checks them in memory. It never writes.
func (d *ConflictDetector) HasConflict(
	ctx context.Context,
	barberID uint,
	candidateStart time.Time,
	candidateDuration time.Duration,
	excludeID uint,
) (bool, *ConflictInfo, error) {

	if candidateDuration <= 0 {
		return false, nil, ErrValidation("invalid_duration", "Duração deve ser positiva.")
	}
	if candidateStart.IsZero() {
		return false, nil, ErrValidation("invalid_start", "Horário inicial inválido.")
	}

	candidateEnd := candidateStart.Add(candidateDuration)

	var existing []Appointment
	lastDay := DayStart(candidateEnd.Add(-time.Nanosecond), d.loc)
	for day := DayStart(candidateStart, d.loc); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		aps, err := d.store.FindActiveByBarberAndDate(ctx, barberID, day)
		if err != nil {
			return false, nil, WrapStorage("find active appointments", err)
		}
		existing = append(existing, aps...)
	}

	info := FindConflict(existing, candidateStart, candidateEnd, excludeID)
	return info != nil, info, nil
}
