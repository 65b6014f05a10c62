package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

type AppointmentDTO struct {
	ID uint `json:"id"`

	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name,omitempty"`

	ClientID   uint   `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`

	ServiceID   uint   `json:"service_id"`
	ServiceName string `json:"service_name,omitempty"`

	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:mm
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	Price       float64   `json:"price"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewAppointmentDTO renders times in loc, the shop timezone.
func NewAppointmentDTO(ap domain.Appointment, loc *time.Location) AppointmentDTO {
	start := ap.Start.In(loc)
	return AppointmentDTO{
		ID:          ap.ID,
		BarberID:    ap.BarberID,
		ClientID:    ap.ClientID,
		ServiceID:   ap.ServiceID,
		Date:        start.Format("2006-01-02"),
		Time:        start.Format("15:04"),
		StartTime:   start,
		EndTime:     ap.End().In(loc),
		DurationMin: ap.DurationMin,
		Price:       ap.Price,
		Status:      string(ap.Status),
		Notes:       ap.Notes,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}
}

func FromDetails(d appointment.AppointmentDetails, loc *time.Location) AppointmentDTO {
	out := NewAppointmentDTO(d.Appointment, loc)
	out.BarberName = d.BarberName
	out.ClientName = d.ClientName
	out.ServiceName = d.ServiceName
	return out
}

func FromDetailsList(list []appointment.AppointmentDetails, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for _, d := range list {
		out = append(out, FromDetails(d, loc))
	}
	return out
}
