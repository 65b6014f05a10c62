package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

type WorkingHoursStore interface {
	Weekly(ctx context.Context, barberID uint) (map[time.Weekday]domain.WeekdayHours, error)
	ReplaceForBarber(ctx context.Context, barberID uint, days []models.WorkingHours) error
}

type WorkingHoursHandler struct {
	store WorkingHoursStore
}

func NewWorkingHoursHandler(store WorkingHoursStore) *WorkingHoursHandler {
	return &WorkingHoursHandler{store: store}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, _ := currentUser(c)

	weekly, err := h.store.Weekly(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao carregar expediente.")
		return
	}

	days := make([]WorkingDayConfig, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		w := weekly[wd]
		days = append(days, WorkingDayConfig{
			Weekday:    int(wd),
			Active:     !w.Closed && w.Open != "",
			StartTime:  w.Open,
			EndTime:    w.Close,
			LunchStart: w.LunchStart,
			LunchEnd:   w.LunchEnd,
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, _ := currentUser(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	toSave := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		if d.Active && !validDayConfig(d) {
			httperr.BadRequest(c, "invalid_working_hours", "Horário de expediente inválido.")
			return
		}

		toSave = append(toSave, models.WorkingHours{
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	if err := h.store.ReplaceForBarber(c.Request.Context(), barberID, toSave); err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validDayConfig requires open < close and, when present, a lunch break inside it.
func validDayConfig(d WorkingDayConfig) bool {
	if (d.LunchStart == "") != (d.LunchEnd == "") {
		return false
	}

	day, err := domain.WeekdayHours{
		Open:       d.StartTime,
		Close:      d.EndTime,
		LunchStart: d.LunchStart,
		LunchEnd:   d.LunchEnd,
	}.On(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || day.Closed {
		return false
	}

	if d.LunchStart != "" {
		if !day.HasLunch() || day.LunchStart.Before(day.Open) || day.LunchEnd.After(day.Close) {
			return false
		}
	}
	return true
}
