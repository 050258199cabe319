package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surat-tugas/portal-api/internal/middleware"
	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/service"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeSessionStore struct {
	saved map[string]models.Credentials
}

func (f *fakeSessionStore) Save(ctx context.Context, sessionID string, creds models.Credentials) error {
	if f.saved == nil {
		f.saved = make(map[string]models.Credentials)
	}
	f.saved[sessionID] = creds
	return nil
}

func (f *fakeSessionStore) Find(ctx context.Context, sessionID string) (*models.Credentials, error) {
	creds, ok := f.saved[sessionID]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return &creds, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(f.saved, sessionID)
	return nil
}

type fakeSnapshotLoader struct {
	snapshot *models.Snapshot
	err      error
}

func (f *fakeSnapshotLoader) Load(ctx context.Context) (*models.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func handlerDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &t
}

func fixtureSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Teachers: []models.TeacherRow{{
			Teacher: models.Teacher{
				Code:     "PGJ-01",
				Name:     "Budi Santoso",
				Subject:  "Matematika",
				WhatsApp: "081234567890",
				Username: "81234567890",
				Password: "rahasia",
			},
			LoginName: "81234567890",
		}},
		Assignments: []models.Assignment{{
			Username:    "81234567890",
			TeacherCode: "PGJ-01",
			DateLabel:   "Rabu, 1 Mei 2024",
			Date:        handlerDate(2024, time.May, 1),
			Sessions:    []string{"Aljabar", "-", "Geometri"},
		}},
		ServiceLogs: []models.ServiceLog{
			{Name: "Budi Santoso", Duration: 2, Branch: "Pusat"},
		},
		Requests: []models.ServiceRequest{{
			ID:          "2024-05-02T09:00:00+07:00",
			NIS:         "12345",
			StudentName: "Agus",
			TeacherName: "Budi Santoso",
			DateISO:     "2024-05-02",
			Date:        handlerDate(2024, time.May, 2),
		}},
		FetchedAt: time.Now(),
	}
}

func newTestAuth(snapshot *models.Snapshot) *service.AuthService {
	loader := &fakeSnapshotLoader{snapshot: snapshot}
	return service.NewAuthService(loader, &fakeSessionStore{}, service.NewSessionRegistry(), nil, service.AuthConfig{Secret: "test-secret"})
}

// openSession logs the fixture teacher in and returns the auth service plus
// the claims to inject into test contexts.
func openSession(t *testing.T) (*service.AuthService, *models.JWTClaims) {
	t.Helper()
	auth := newTestAuth(fixtureSnapshot())
	result, err := auth.Login(context.Background(), "81234567890", "rahasia")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	return auth, claims
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(newTestAuth(fixtureSnapshot()))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"81234567890","password":"rahasia"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.NotEmpty(t, data["token"])
	teacher := data["teacher"].(map[string]interface{})
	assert.Equal(t, "Budi Santoso", teacher["nama"])
	_, hasPassword := teacher["password"]
	assert.False(t, hasPassword)
}

func TestAuthHandlerLoginRejectsBadPayloadAndCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(newTestAuth(fixtureSnapshot()))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Login(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"81234567890","password":"salah"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth, claims := openSession(t)
	handler := NewAuthHandler(auth)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	c.Set(middleware.ContextUserKey, claims)

	handler.Logout(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandlerMeRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(newTestAuth(fixtureSnapshot()))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
