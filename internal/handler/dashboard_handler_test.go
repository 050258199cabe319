package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surat-tugas/portal-api/internal/middleware"
	"github.com/surat-tugas/portal-api/internal/normalize"
	"github.com/surat-tugas/portal-api/internal/service"
)

func TestDashboardHandlerOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, claims := openSession(t)
	handler := NewDashboardHandler(
		auth,
		service.NewScheduleService(normalize.DefaultLocale(), nil),
		service.NewLeaderboardService(nil),
		service.NewRequestService(&fakeGateway{}, nil, normalize.DefaultLocale(), nil),
	)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Set(middleware.ContextUserKey, claims)

	handler.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	teacher := data["teacher"].(map[string]interface{})
	assert.Equal(t, "Budi Santoso", teacher["nama"])
	assert.Equal(t, float64(1), data["permintaanMenunggu"])
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total"])

	board := data["leaderboard"].(map[string]interface{})
	ranking := board["pelayananTerbanyak"].([]interface{})
	require.Len(t, ranking, 1)
}

func TestDashboardHandlerRequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(
		newTestAuth(fixtureSnapshot()),
		service.NewScheduleService(normalize.DefaultLocale(), nil),
		service.NewLeaderboardService(nil),
		service.NewRequestService(&fakeGateway{}, nil, normalize.DefaultLocale(), nil),
	)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	handler.Overview(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
