package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

func TestFromDetails_RendersInShopTimezone(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	d := appointment.AppointmentDetails{
		Appointment: domain.Appointment{
			ID:          9,
			BarberID:    1,
			ClientID:    2,
			ServiceID:   3,
			Start:       time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			DurationMin: 45,
			Price:       40,
			Status:      domain.StatusScheduled,
		},
		BarberName:  "Ana",
		ClientName:  "João",
		ServiceName: "Corte",
	}

	out := FromDetails(d, loc)

	assert.Equal(t, "2026-03-02", out.Date)
	assert.Equal(t, "09:00", out.Time)
	assert.Equal(t, "09:45", out.EndTime.Format("15:04"))
	assert.Equal(t, "scheduled", out.Status)
	assert.Equal(t, "Ana", out.BarberName)
	assert.Equal(t, 45, out.DurationMin)
	assert.Equal(t, 40.0, out.Price)
}

func TestFromSchedule_ClosedDayHasNoHours(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	out := FromSchedule([]appointment.DaySchedule{
		{
			Date:       day,
			Weekday:    day.Weekday(),
			Open:       day.Add(9 * time.Hour),
			Close:      day.Add(18 * time.Hour),
			LunchStart: day.Add(12 * time.Hour),
			LunchEnd:   day.Add(13 * time.Hour),
		},
		{Date: day.AddDate(0, 0, 1), Weekday: time.Tuesday, Closed: true},
	})

	assert.Equal(t, DayScheduleDTO{
		Date: "2026-03-02", Weekday: 1, Open: "09:00", Close: "18:00", LunchStart: "12:00", LunchEnd: "13:00",
	}, out[0])
	assert.Equal(t, DayScheduleDTO{Date: "2026-03-03", Weekday: 2, Closed: true}, out[1])
}
