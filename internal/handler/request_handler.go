package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/dto"
	"github.com/surat-tugas/portal-api/internal/service"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
	"github.com/surat-tugas/portal-api/pkg/response"
)

// RequestHandler serves the service-request list and decision endpoints.
type RequestHandler struct {
	auth     *service.AuthService
	requests *service.RequestService
}

// NewRequestHandler constructs a request handler.
func NewRequestHandler(auth *service.AuthService, requests *service.RequestService) *RequestHandler {
	return &RequestHandler{auth: auth, requests: requests}
}

// List returns the teacher's requests. With ?status=pending only undecided
// requests are returned.
func (h *RequestHandler) List(c *gin.Context) {
	state, _, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	pendingOnly := c.Query("status") == "pending"
	requests := h.requests.ListForTeacher(state, pendingOnly)
	response.JSON(c, http.StatusOK, dto.FromRequests(requests))
}

// Approve marks a request approved and pushes the decision upstream.
func (h *RequestHandler) Approve(c *gin.Context) {
	state, sessionID, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Tanggal dan jam persetujuan wajib diisi."))
		return
	}

	updated, err := h.requests.Approve(c.Request.Context(), state, sessionID, c.Param("id"), req.ApprovedDate, req.ApprovedTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FromRequest(updated))
}

// Reject marks a request rejected and pushes the decision upstream.
func (h *RequestHandler) Reject(c *gin.Context) {
	state, sessionID, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.requests.Reject(c.Request.Context(), state, sessionID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FromRequest(updated))
}
