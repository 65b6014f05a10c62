package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentService is the staff side of the scheduling service.
type AppointmentService interface {
	Location() *time.Location
	CreateAppointment(ctx context.Context, in appointment.CreateAppointmentInput) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id uint, in appointment.UpdateAppointmentInput) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, to domain.Status) (*domain.Appointment, error)
	GetAppointment(ctx context.Context, id uint) (*appointment.AppointmentDetails, error)
	ListByDate(ctx context.Context, barberID uint, date time.Time) ([]appointment.AppointmentDetails, error)
	ListByMonth(ctx context.Context, barberID uint, year int, month time.Month) ([]appointment.AppointmentDetails, error)
}

type AppointmentHandler struct {
	svc AppointmentService
	loc *time.Location
}

func NewAppointmentHandler(svc AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, loc: svc.Location()}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	BarberID  uint   `json:"barber_id"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes" binding:"max=255"`
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	BarberID  *uint   `json:"barber_id"`
	ServiceID *uint   `json:"service_id"`
	ClientID  *uint   `json:"client_id"`
	Notes     *string `json:"notes" binding:"omitempty,max=255"`
	Status    *string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barberID := scopeBarber(c, req.BarberID)
	if barberID == 0 {
		httperr.BadRequest(c, "barber_required", "Informe o barbeiro.")
		return
	}

	start, err := parseDateTimeIn(h.loc, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.svc.CreateAppointment(c.Request.Context(), appointment.CreateAppointmentInput{
		ClientID:  req.ClientID,
		BarberID:  barberID,
		ServiceID: req.ServiceID,
		Start:     start,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointmentDTO(*ap, h.loc))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	details, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromDetails(*details, h.loc))
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, err := parseDateIn(h.loc, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	requested, ok := parseUintQuery(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	list, err := h.svc.ListByDate(c.Request.Context(), scopeBarber(c, requested), date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         date.Format("2006-01-02"),
		"appointments": dto.FromDetailsList(list, h.loc),
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Ano e mês obrigatórios.")
		return
	}

	requested, ok := parseUintQuery(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	list, err := h.svc.ListByMonth(c.Request.Context(), scopeBarber(c, requested), year, time.Month(month))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": dto.FromDetailsList(list, h.loc),
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	current, ok := h.loadOwned(c)
	if !ok {
		return
	}

	in := appointment.UpdateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		ClientID:  req.ClientID,
		Notes:     req.Notes,
	}

	// 1️⃣ Novo horário: data e hora juntas
	if req.Date != nil || req.Time != nil {
		if req.Date == nil || req.Time == nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Informe data e hora.")
			return
		}
		start, err := parseDateTimeIn(h.loc, *req.Date, *req.Time)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
			return
		}
		in.Start = &start
	}

	// 2️⃣ Barbeiro só remarca na própria agenda
	if req.BarberID != nil && !canAccessBarber(c, *req.BarberID) {
		httperr.Forbidden(c, "forbidden_barber", "Não é permitido mover para outro barbeiro.")
		return
	}

	// 3️⃣ Status
	if req.Status != nil {
		st, err := domain.ParseStatus(*req.Status)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		in.Status = &st
	}

	ap, err := h.svc.UpdateAppointment(c.Request.Context(), current.ID, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(*ap, h.loc))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.changeStatus(c, domain.StatusConfirmed) }
func (h *AppointmentHandler) Start(c *gin.Context)    { h.changeStatus(c, domain.StatusInProgress) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.changeStatus(c, domain.StatusCompleted) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.changeStatus(c, domain.StatusCancelled) }

func (h *AppointmentHandler) changeStatus(c *gin.Context, to domain.Status) {
	current, ok := h.loadOwned(c)
	if !ok {
		return
	}

	ap, err := h.svc.UpdateStatus(c.Request.Context(), current.ID, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointmentDTO(*ap, h.loc))
}

// ======================================================
// HELPERS
// ======================================================

// loadOwned answers 404 for appointments outside the caller's agenda.
func (h *AppointmentHandler) loadOwned(c *gin.Context) (*appointment.AppointmentDetails, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	details, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}

	if !canAccessBarber(c, details.BarberID) {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return nil, false
	}

	return details, true
}
