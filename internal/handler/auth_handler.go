package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/dto"
	"github.com/surat-tugas/portal-api/internal/service"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
	"github.com/surat-tugas/portal-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login authenticates a teacher against the directory sheet and issues a
// session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Teacher:   dto.FromTeacher(result.Teacher),
	})
}

// Logout closes the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), claims.SessionID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me returns the profile of the authenticated teacher.
func (h *AuthHandler) Me(c *gin.Context) {
	state, _, err := sessionFromContext(c, h.service)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FromTeacher(state.Teacher()))
}
