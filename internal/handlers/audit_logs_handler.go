package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogReader interface {
	List(ctx context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLogReader
	loc  *time.Location
}

func NewAuditLogsHandler(logs AuditLogReader, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entityID, ok := parseUintQuery(c, "entity_id")
	if !ok {
		httperr.BadRequest(c, "invalid_entity_id", "Entidade inválida.")
		return
	}

	f := repository.AuditLogFilter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: entityID,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	// --------------------------------------------------
	// Barbeiro só vê a própria trilha
	// --------------------------------------------------
	userID, role := currentUser(c)
	if isBarberScoped(role) {
		f.UserID = userID
	}

	// --------------------------------------------------
	// Filtros de período
	// --------------------------------------------------
	if s := c.Query("from"); s != "" {
		if from, err := parseDateIn(h.loc, s); err == nil {
			f.From = from
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err := parseDateIn(h.loc, s); err == nil {
			f.To = to.AddDate(0, 0, 1)
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Paged(c, logs, page, limit, total)
}
