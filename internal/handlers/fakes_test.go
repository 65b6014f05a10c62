package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var saoPaulo = timezone.Location("America/Sao_Paulo")

// fakeScheduler records the last call of each operation and returns canned results.
type fakeScheduler struct {
	created    *appointment.CreateAppointmentInput
	updated    *appointment.UpdateAppointmentInput
	statusTo   domain.Status
	booked     *appointment.PublicBookInput
	hoursFrom  time.Time
	hoursBarb  uint
	listBarber uint

	appointments map[uint]domain.Appointment
	slots        []domain.TimeSlot
	err          error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{appointments: map[uint]domain.Appointment{}}
}

func (f *fakeScheduler) Location() *time.Location { return saoPaulo }

func (f *fakeScheduler) CreateAppointment(_ context.Context, in appointment.CreateAppointmentInput) (*domain.Appointment, error) {
	f.created = &in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		ID: 1, BarberID: in.BarberID, ClientID: in.ClientID, ServiceID: in.ServiceID,
		Start: in.Start, DurationMin: 30, Status: domain.StatusScheduled,
	}, nil
}

func (f *fakeScheduler) UpdateAppointment(_ context.Context, id uint, in appointment.UpdateAppointmentInput) (*domain.Appointment, error) {
	f.updated = &in
	if f.err != nil {
		return nil, f.err
	}
	ap := f.appointments[id]
	if in.Start != nil {
		ap.Start = *in.Start
	}
	if in.Status != nil {
		ap.Status = *in.Status
	}
	return &ap, nil
}

func (f *fakeScheduler) UpdateStatus(_ context.Context, id uint, to domain.Status) (*domain.Appointment, error) {
	f.statusTo = to
	if f.err != nil {
		return nil, f.err
	}
	ap := f.appointments[id]
	ap.Status = to
	return &ap, nil
}

func (f *fakeScheduler) GetAppointment(_ context.Context, id uint) (*appointment.AppointmentDetails, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound("appointment", id)
	}
	return &appointment.AppointmentDetails{Appointment: ap, BarberName: "Ana"}, nil
}

func (f *fakeScheduler) ListByDate(_ context.Context, barberID uint, _ time.Time) ([]appointment.AppointmentDetails, error) {
	f.listBarber = barberID
	return []appointment.AppointmentDetails{}, f.err
}

func (f *fakeScheduler) ListByMonth(_ context.Context, barberID uint, _ int, month time.Month) ([]appointment.AppointmentDetails, error) {
	f.listBarber = barberID
	if month < time.January || month > time.December {
		return nil, domain.ErrValidation("invalid_month", "Mês inválido.")
	}
	return []appointment.AppointmentDetails{}, f.err
}

func (f *fakeScheduler) ListServices(context.Context) ([]domain.Service, error) {
	return []domain.Service{{ID: 10, Name: "Corte", DurationMin: 30, Price: 40, Active: true}}, f.err
}

func (f *fakeScheduler) ListBarbers(context.Context) ([]domain.Barber, error) {
	return []domain.Barber{{ID: 1, Name: "Ana", Active: true}}, f.err
}

func (f *fakeScheduler) GetAvailability(context.Context, uint, time.Time, uint) ([]domain.TimeSlot, error) {
	return f.slots, f.err
}

func (f *fakeScheduler) PublicBook(_ context.Context, in appointment.PublicBookInput) (*domain.Appointment, error) {
	f.booked = &in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		ID: 42, BarberID: in.BarberID, ServiceID: in.ServiceID, ClientID: 7,
		Start: in.Start, DurationMin: 30, Status: domain.StatusScheduled,
	}, nil
}

func (f *fakeScheduler) ConfirmPublic(_ context.Context, id uint) (*appointment.ConfirmResult, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound("appointment", id)
	}
	if ap.Status == domain.StatusConfirmed {
		return &appointment.ConfirmResult{Appointment: &ap, AlreadyConfirmed: true}, nil
	}
	ap.Status = domain.StatusConfirmed
	f.appointments[id] = ap
	return &appointment.ConfirmResult{Appointment: &ap}, nil
}

func (f *fakeScheduler) BusinessHours(_ context.Context, barberID uint, from time.Time) ([]appointment.DaySchedule, error) {
	f.hoursBarb = barberID
	f.hoursFrom = from
	return []appointment.DaySchedule{{Date: from, Weekday: from.Weekday(), Closed: true}}, f.err
}

var (
	_ AppointmentService = (*fakeScheduler)(nil)
	_ PublicService      = (*fakeScheduler)(nil)
)

// -------- helpers --------

// asUser stands in for the JWT middleware.
func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

// -------- users / working hours --------

type fakeUsers struct {
	byEmail map[string]*models.User
}

func (f fakeUsers) FindActiveByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound("user", email)
}

func (f fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound("user", id)
}

type fakeHoursStore struct {
	saved    []models.WorkingHours
	barberID uint
}

func (f *fakeHoursStore) Weekly(context.Context, uint) (map[time.Weekday]domain.WeekdayHours, error) {
	out := map[time.Weekday]domain.WeekdayHours{}
	for wd, h := range domain.DefaultWeeklyHours {
		out[wd] = h
	}
	out[time.Sunday] = domain.WeekdayHours{Closed: true}
	return out, nil
}

func (f *fakeHoursStore) ReplaceForBarber(_ context.Context, barberID uint, days []models.WorkingHours) error {
	f.barberID = barberID
	f.saved = days
	return nil
}

// monday returns 2026-03-02 at h:m in São Paulo.
func monday(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, saoPaulo)
}
