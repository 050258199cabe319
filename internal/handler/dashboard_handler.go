package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/dto"
	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/service"
	"github.com/surat-tugas/portal-api/pkg/response"
)

// dashboardUpcomingLimit caps the upcoming sessions shown on the landing view.
const dashboardUpcomingLimit = 3

// DashboardHandler assembles the landing view out of the derived services.
type DashboardHandler struct {
	auth        *service.AuthService
	schedules   *service.ScheduleService
	leaderboard *service.LeaderboardService
	requests    *service.RequestService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(auth *service.AuthService, schedules *service.ScheduleService, leaderboard *service.LeaderboardService, requests *service.RequestService) *DashboardHandler {
	return &DashboardHandler{auth: auth, schedules: schedules, leaderboard: leaderboard, requests: requests}
}

// Overview returns the teacher's dashboard.
func (h *DashboardHandler) Overview(c *gin.Context) {
	state, _, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot := state.Snapshot()
	teacher := state.Teacher()
	schedule := h.schedules.Build(snapshot, teacher, service.ScheduleFilter{})

	upcoming := make([]dto.ScheduleEntry, 0, dashboardUpcomingLimit)
	full := dto.FromSchedule(schedule)
	for _, entry := range full.Entries {
		if entry.Status != string(models.SessionToday) && entry.Status != string(models.SessionUpcoming) {
			continue
		}
		upcoming = append(upcoming, entry)
		if len(upcoming) == dashboardUpcomingLimit {
			break
		}
	}

	pending := h.requests.ListForTeacher(state, true)

	response.JSON(c, http.StatusOK, dto.DashboardResponse{
		Teacher:         dto.FromTeacher(teacher),
		Stats:           full.Stats,
		Upcoming:        upcoming,
		PendingRequests: len(pending),
		Leaderboard:     dto.FromLeaderboard(h.leaderboard.Build(snapshot)),
	})
}
