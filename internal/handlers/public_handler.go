package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicService is what anonymous clients can reach.
type PublicService interface {
	Location() *time.Location
	ListServices(ctx context.Context) ([]domain.Service, error)
	ListBarbers(ctx context.Context) ([]domain.Barber, error)
	GetAvailability(ctx context.Context, barberID uint, date time.Time, serviceID uint) ([]domain.TimeSlot, error)
	PublicBook(ctx context.Context, in appointment.PublicBookInput) (*domain.Appointment, error)
	ConfirmPublic(ctx context.Context, id uint) (*appointment.ConfirmResult, error)
	BusinessHours(ctx context.Context, barberID uint, from time.Time) ([]appointment.DaySchedule, error)
}

type PublicHandler struct {
	svc PublicService
	loc *time.Location
	now func() time.Time

	checkEmailDomain func(email string) bool
}

func NewPublicHandler(svc PublicService) *PublicHandler {
	return &PublicHandler{
		svc:              svc,
		loc:              svc.Location(),
		now:              time.Now,
		checkEmailDomain: validators.IsEmailDomainValid,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone"`
	LGPDConsent bool   `json:"lgpd_consent"`
	Notes       string `json:"notes" binding:"max=255"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	svcs, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": dto.FromServices(svcs)})
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.svc.ListBarbers(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barbers": dto.FromBarbers(barbers)})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barberID")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDateIn(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.svc.GetAvailability(c.Request.Context(), barberID, date, uint(serviceID))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id":  barberID,
		"service_id": serviceID,
		"date":       dateStr,
		"slots":      slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTimeIn(h.loc, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	email := validators.NormalizeEmail(req.ClientEmail)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}
	if !h.checkEmailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	ap, err := h.svc.PublicBook(c.Request.Context(), appointment.PublicBookInput{
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		Start:       start,
		ClientName:  req.ClientName,
		ClientEmail: email,
		ClientPhone: req.ClientPhone,
		LGPDConsent: req.LGPDConsent,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": dto.NewAppointmentDTO(*ap, h.loc),
		"confirm_url": fmt.Sprintf("/api/public/appointments/%d/confirm", ap.ID),
	})
}

func (h *PublicHandler) ConfirmAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res, err := h.svc.ConfirmPublic(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	message := "Agendamento confirmado."
	if res.AlreadyConfirmed {
		message = "Agendamento já estava confirmado."
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           message,
		"already_confirmed": res.AlreadyConfirmed,
		"appointment":       dto.NewAppointmentDTO(*res.Appointment, h.loc),
	})
}

////////////////////////////////////////////////////////
// BUSINESS HOURS
////////////////////////////////////////////////////////

func (h *PublicHandler) BusinessHours(c *gin.Context) {
	barberID, ok := parseUintQuery(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	from := h.now().In(h.loc)
	if s := c.Query("from"); s != "" {
		d, err := parseDateIn(h.loc, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		from = d
	}

	days, err := h.svc.BusinessHours(c.Request.Context(), barberID, from)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": dto.FromSchedule(days)})
}
