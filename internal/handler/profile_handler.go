package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/dto"
	"github.com/surat-tugas/portal-api/internal/service"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
	"github.com/surat-tugas/portal-api/pkg/response"
)

// ProfileHandler serves the profile update endpoint.
type ProfileHandler struct {
	auth    *service.AuthService
	profile *service.ProfileService
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(auth *service.AuthService, profile *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{auth: auth, profile: profile}
}

// Update applies a profile change for the authenticated teacher.
func (h *ProfileHandler) Update(c *gin.Context) {
	state, sessionID, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	updated, err := h.profile.Update(c.Request.Context(), state, sessionID, req.ToProfileInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FromTeacher(updated))
}
