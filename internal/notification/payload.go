package notification

import (
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// Payload is the JSON body shared by every sink.
type Payload struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`

	AppointmentID uint `json:"appointment_id"`
	BarberID      uint `json:"barber_id"`
	ClientID      uint `json:"client_id"`
	ServiceID     uint `json:"service_id"`

	Status         domain.Status `json:"status"`
	PreviousStatus domain.Status `json:"previous_status,omitempty"`

	Start         time.Time  `json:"start_time"`
	End           time.Time  `json:"end_time"`
	PreviousStart *time.Time `json:"previous_start_time,omitempty"`
	DurationMin   int        `json:"duration_min"`
	Price         float64    `json:"price"`

	OccurredAt time.Time `json:"occurred_at"`
}

func NewPayload(ev domain.LifecycleEvent) Payload {
	ap := ev.Appointment
	return Payload{
		EventID:        ev.ID,
		EventType:      "appointment." + string(ev.Kind),
		AppointmentID:  ap.ID,
		BarberID:       ap.BarberID,
		ClientID:       ap.ClientID,
		ServiceID:      ap.ServiceID,
		Status:         ap.Status,
		PreviousStatus: ev.PreviousStatus,
		Start:          ap.Start,
		End:            ap.End(),
		PreviousStart:  ev.PreviousStart,
		DurationMin:    ap.DurationMin,
		Price:          ap.Price,
		OccurredAt:     ev.OccurredAt,
	}
}
