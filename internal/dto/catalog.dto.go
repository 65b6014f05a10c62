package dto

import (
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

func FromServices(svcs []domain.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, ServiceDTO{ID: s.ID, Name: s.Name, DurationMin: s.DurationMin, Price: s.Price})
	}
	return out
}

type BarberDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func FromBarbers(barbers []domain.Barber) []BarberDTO {
	out := make([]BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, BarberDTO{ID: b.ID, Name: b.Name})
	}
	return out
}

type DayScheduleDTO struct {
	Date       string `json:"date"`
	Weekday    int    `json:"weekday"`
	Closed     bool   `json:"closed"`
	Open       string `json:"open,omitempty"`
	Close      string `json:"close,omitempty"`
	LunchStart string `json:"lunch_start,omitempty"`
	LunchEnd   string `json:"lunch_end,omitempty"`
}

func hm(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

func FromSchedule(days []appointment.DaySchedule) []DayScheduleDTO {
	out := make([]DayScheduleDTO, 0, len(days))
	for _, d := range days {
		item := DayScheduleDTO{
			Date:    d.Date.Format("2006-01-02"),
			Weekday: int(d.Weekday),
			Closed:  d.Closed,
		}
		if !d.Closed {
			item.Open = hm(d.Open)
			item.Close = hm(d.Close)
			item.LunchStart = hm(d.LunchStart)
			item.LunchEnd = hm(d.LunchEnd)
		}
		out = append(out, item)
	}
	return out
}
