package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// --------------------------------------------------
// Datas no timezone da barbearia
// --------------------------------------------------

func parseDateIn(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

func parseDateTimeIn(loc *time.Location, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// --------------------------------------------------
// Usuário autenticado
// --------------------------------------------------

func currentUser(c *gin.Context) (uint, string) {
	id, _ := c.Get(middleware.ContextUserID)
	userID, _ := id.(uint)
	return userID, c.GetString(middleware.ContextUserRole)
}

func isBarberScoped(role string) bool {
	return role != models.RoleAdmin && role != models.RoleReceptionist
}

// scopeBarber pins barbers to their own agenda; admins and receptionists pick one.
func scopeBarber(c *gin.Context, requested uint) uint {
	userID, role := currentUser(c)
	if isBarberScoped(role) {
		return userID
	}
	return requested
}

func canAccessBarber(c *gin.Context, barberID uint) bool {
	userID, role := currentUser(c)
	return !isBarberScoped(role) || userID == barberID
}
