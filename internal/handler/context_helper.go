package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/middleware"
	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/service"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// sessionFromContext resolves the live session state behind the request's
// token, silently rebuilding it from the persisted credential pair when the
// in-memory copy has gone.
func sessionFromContext(c *gin.Context, auth *service.AuthService) (*service.SessionState, string, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return nil, "", appErrors.ErrUnauthorized
	}
	state, err := auth.Resume(c.Request.Context(), claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	return state, claims.SessionID, nil
}
