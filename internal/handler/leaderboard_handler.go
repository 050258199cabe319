package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/dto"
	"github.com/surat-tugas/portal-api/internal/service"
	"github.com/surat-tugas/portal-api/pkg/response"
)

// LeaderboardHandler serves the service-log rankings.
type LeaderboardHandler struct {
	auth        *service.AuthService
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler constructs a leaderboard handler.
func NewLeaderboardHandler(auth *service.AuthService, leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{auth: auth, leaderboard: leaderboard}
}

// List returns the three rankings computed over the session snapshot.
func (h *LeaderboardHandler) List(c *gin.Context) {
	state, _, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FromLeaderboard(h.leaderboard.Build(state.Snapshot())))
}
