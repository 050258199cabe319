package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surat-tugas/portal-api/internal/models"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

type mockSessionStore struct {
	saved   map[string]models.Credentials
	findErr error
	saveErr error
	deleted []string
}

func (m *mockSessionStore) Save(ctx context.Context, sessionID string, creds models.Credentials) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.saved == nil {
		m.saved = make(map[string]models.Credentials)
	}
	m.saved[sessionID] = creds
	return nil
}

func (m *mockSessionStore) Find(ctx context.Context, sessionID string) (*models.Credentials, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	creds, ok := m.saved[sessionID]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return &creds, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	m.deleted = append(m.deleted, sessionID)
	delete(m.saved, sessionID)
	return nil
}

type mockSnapshotLoader struct {
	snapshot *models.Snapshot
	err      error
	calls    int
}

func (m *mockSnapshotLoader) Load(ctx context.Context) (*models.Snapshot, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}

func authSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Teachers: []models.TeacherRow{
			{
				Teacher: models.Teacher{
					Code:     "PGJ-01",
					Name:     "Budi Santoso",
					Username: "81234567890",
					Password: "rahasia",
					WhatsApp: "081234567890",
				},
				LoginName: "81234567890",
			},
			{
				Teacher: models.Teacher{
					Code:     "PGJ-02",
					Name:     "Siti Rahma",
					Username: "81200011122",
					Password: "kunci",
				},
				LoginName: " 81200011122 ",
			},
		},
	}
}

func newTestAuthService(loader *mockSnapshotLoader, store *mockSessionStore) *AuthService {
	return NewAuthService(loader, store, NewSessionRegistry(), nil, AuthConfig{Secret: "test-secret"})
}

func TestAuthenticateMatchesFoldedUsernameExactPassword(t *testing.T) {
	svc := newTestAuthService(&mockSnapshotLoader{}, &mockSessionStore{})
	snapshot := authSnapshot()

	teacher, err := svc.Authenticate(snapshot, "  81234567890 ", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", teacher.Name)

	// Row-side whitespace folds too.
	teacher, err = svc.Authenticate(snapshot, "81200011122", "kunci")
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahma", teacher.Name)
}

func TestAuthenticateRejectsBadOrBlankCredentials(t *testing.T) {
	svc := newTestAuthService(&mockSnapshotLoader{}, &mockSessionStore{})
	snapshot := authSnapshot()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "81234567890", "Rahasia"},
		{"unknown user", "80000000000", "rahasia"},
		{"blank username", "", "rahasia"},
		{"blank password", "81234567890", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(snapshot, tc.username, tc.password)
			assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
		})
	}
}

func TestLoginIssuesTokenAndPersistsSession(t *testing.T) {
	loader := &mockSnapshotLoader{snapshot: authSnapshot()}
	store := &mockSessionStore{}
	svc := newTestAuthService(loader, store)

	result, err := svc.Login(context.Background(), "81234567890", "rahasia")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "Budi Santoso", result.Teacher.Name)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "81234567890", claims.Username)
	require.NotEmpty(t, claims.SessionID)

	creds, ok := store.saved[claims.SessionID]
	require.True(t, ok)
	assert.Equal(t, models.Credentials{Username: "81234567890", Password: "rahasia"}, creds)

	_, ok = svc.registry.Get(claims.SessionID)
	assert.True(t, ok)
}

func TestLoginSurfacesIngestFailure(t *testing.T) {
	loader := &mockSnapshotLoader{err: appErrors.ErrSheetUnavailable}
	svc := newTestAuthService(loader, &mockSessionStore{})

	_, err := svc.Login(context.Background(), "81234567890", "rahasia")
	assert.ErrorIs(t, err, appErrors.ErrSheetUnavailable)
}

func TestResumeReplaysPersistedCredentials(t *testing.T) {
	loader := &mockSnapshotLoader{snapshot: authSnapshot()}
	store := &mockSessionStore{}
	svc := newTestAuthService(loader, store)

	result, err := svc.Login(context.Background(), "81234567890", "rahasia")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)

	// Simulate a restart: in-memory state gone, credential pair survives.
	svc.registry.Delete(claims.SessionID)

	state, err := svc.Resume(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", state.Teacher().Name)
	assert.Equal(t, 2, loader.calls)
}

func TestResumeCollapsesFailuresToUnauthorized(t *testing.T) {
	t.Run("missing session", func(t *testing.T) {
		svc := newTestAuthService(&mockSnapshotLoader{snapshot: authSnapshot()}, &mockSessionStore{})
		_, err := svc.Resume(context.Background(), "ghost")
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("ingest failure", func(t *testing.T) {
		store := &mockSessionStore{saved: map[string]models.Credentials{
			"sid": {Username: "81234567890", Password: "rahasia"},
		}}
		svc := newTestAuthService(&mockSnapshotLoader{err: errors.New("boom")}, store)
		_, err := svc.Resume(context.Background(), "sid")
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})

	t.Run("stale credentials", func(t *testing.T) {
		store := &mockSessionStore{saved: map[string]models.Credentials{
			"sid": {Username: "81234567890", Password: "sudah-diganti"},
		}}
		svc := newTestAuthService(&mockSnapshotLoader{snapshot: authSnapshot()}, store)
		_, err := svc.Resume(context.Background(), "sid")
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	})
}

func TestLogoutDropsBothSides(t *testing.T) {
	loader := &mockSnapshotLoader{snapshot: authSnapshot()}
	store := &mockSessionStore{}
	svc := newTestAuthService(loader, store)

	result, err := svc.Login(context.Background(), "81234567890", "rahasia")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.SessionID))
	assert.Contains(t, store.deleted, claims.SessionID)
	_, ok := svc.registry.Get(claims.SessionID)
	assert.False(t, ok)
}

func TestRefreshCredentialsPreservesUnchangedHalf(t *testing.T) {
	store := &mockSessionStore{saved: map[string]models.Credentials{
		"sid": {Username: "81234567890", Password: "rahasia"},
	}}
	svc := newTestAuthService(&mockSnapshotLoader{}, store)

	require.NoError(t, svc.RefreshCredentials(context.Background(), "sid", "81299988877", ""))
	assert.Equal(t, models.Credentials{Username: "81299988877", Password: "rahasia"}, store.saved["sid"])

	require.NoError(t, svc.RefreshCredentials(context.Background(), "sid", "", "baru"))
	assert.Equal(t, models.Credentials{Username: "81299988877", Password: "baru"}, store.saved["sid"])
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := newTestAuthService(&mockSnapshotLoader{snapshot: authSnapshot()}, &mockSessionStore{})
	result, err := svc.Login(context.Background(), "81234567890", "rahasia")
	require.NoError(t, err)

	other := newTestAuthService(&mockSnapshotLoader{}, &mockSessionStore{})
	other.config.Secret = "different"
	_, err = other.ValidateToken(result.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
