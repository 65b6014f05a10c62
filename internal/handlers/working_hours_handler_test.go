package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

func hoursRouter(store *fakeHoursStore) *gin.Engine {
	h := NewWorkingHoursHandler(store)
	r := gin.New()
	g := r.Group("/api", asUser(3, models.RoleBarber))
	g.GET("/me/working-hours", h.Get)
	g.PUT("/me/working-hours", h.Update)
	return r
}

func TestWorkingHours_GetReturnsAllWeekdays(t *testing.T) {
	w := doJSON(hoursRouter(&fakeHoursStore{}), http.MethodGet, "/api/me/working-hours", nil)
	require.Equal(t, http.StatusOK, w.Code)

	days := decode(w)["days"].([]any)
	require.Len(t, days, 7)
	sun := days[0].(map[string]any)
	mon := days[1].(map[string]any)
	assert.Equal(t, false, sun["active"])
	assert.Equal(t, true, mon["active"])
	assert.Equal(t, "09:00", mon["start_time"])
}

func TestWorkingHours_Update(t *testing.T) {
	store := &fakeHoursStore{}
	r := hoursRouter(store)

	w := doJSON(r, http.MethodPut, "/api/me/working-hours", gin.H{"days": []gin.H{
		{"weekday": 0, "active": false},
		{"weekday": 1, "active": true, "start_time": "08:00", "end_time": "17:00", "lunch_start": "12:00", "lunch_end": "13:00"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint(3), store.barberID)
	require.Len(t, store.saved, 2)
	assert.Equal(t, "08:00", store.saved[1].StartTime)
}

func TestWorkingHours_UpdateValidation(t *testing.T) {
	cases := map[string][]gin.H{
		"close before open": {{"weekday": 1, "active": true, "start_time": "18:00", "end_time": "09:00"}},
		"bad clock":         {{"weekday": 1, "active": true, "start_time": "9h", "end_time": "18:00"}},
		"half lunch":        {{"weekday": 1, "active": true, "start_time": "09:00", "end_time": "18:00", "lunch_start": "12:00"}},
		"lunch outside":     {{"weekday": 1, "active": true, "start_time": "09:00", "end_time": "18:00", "lunch_start": "18:00", "lunch_end": "19:00"}},
		"duplicate": {
			{"weekday": 2, "active": false},
			{"weekday": 2, "active": false},
		},
		"weekday range": {{"weekday": 7, "active": false}},
	}

	for name, days := range cases {
		store := &fakeHoursStore{}
		w := doJSON(hoursRouter(store), http.MethodPut, "/api/me/working-hours", gin.H{"days": days})
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Nil(t, store.saved, name)
	}
}

type fakeAuditLogs struct {
	got repository.AuditLogFilter
}

func (f *fakeAuditLogs) List(_ context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	f.got = filter
	return []models.AuditLog{{ID: 1, Action: "appointment_created", Entity: "appointment"}}, 1, nil
}

func TestAuditLogs_List(t *testing.T) {
	logs := &fakeAuditLogs{}
	h := NewAuditLogsHandler(logs, saoPaulo)

	r := gin.New()
	r.GET("/barber/audit-logs", asUser(3, models.RoleBarber), h.List)
	r.GET("/admin/audit-logs", asUser(1, models.RoleAdmin), h.List)

	w := doJSON(r, http.MethodGet, "/barber/audit-logs?page=2&limit=10&entity_id=4&from=2026-03-01&to=2026-03-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), logs.got.UserID)
	assert.Equal(t, uint(4), logs.got.EntityID)
	assert.Equal(t, 10, logs.got.Offset)
	assert.Equal(t, "2026-03-03", logs.got.To.Format("2006-01-02"))
	body := decode(w)
	assert.Equal(t, float64(1), body["total"])
	assert.Len(t, body["data"], 1)

	w = doJSON(r, http.MethodGet, "/admin/audit-logs?limit=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(0), logs.got.UserID)
	assert.Equal(t, 50, logs.got.Limit)
}
