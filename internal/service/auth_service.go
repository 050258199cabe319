package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/normalize"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

type sessionStore interface {
	Save(ctx context.Context, sessionID string, creds models.Credentials) error
	Find(ctx context.Context, sessionID string) (*models.Credentials, error)
	Delete(ctx context.Context, sessionID string) error
}

type snapshotLoader interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
}

// LoginResult carries the issued token alongside the authenticated teacher.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Teacher   models.Teacher
}

// AuthService authenticates teachers against the directory sheet and manages
// token-bound sessions. Credentials live only in the sheet, so every login
// ingests a fresh snapshot and matches against it.
type AuthService struct {
	snapshots snapshotLoader
	sessions  sessionStore
	registry  *SessionRegistry
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(snapshots snapshotLoader, sessions sessionStore, registry *SessionRegistry, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiration <= 0 {
		config.Expiration = 24 * time.Hour
	}
	return &AuthService{
		snapshots: snapshots,
		sessions:  sessions,
		registry:  registry,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// Authenticate matches a credential pair against the directory rows. The
// username comparison folds case and surrounding whitespace; the password is
// compared exactly after trimming. The first matching row wins.
func (s *AuthService) Authenticate(snapshot *models.Snapshot, username, password string) (models.Teacher, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return models.Teacher{}, appErrors.ErrInvalidCredentials
	}

	folded := normalize.Fold(username)
	for _, row := range snapshot.Teachers {
		if normalize.Fold(row.LoginName) == folded && strings.TrimSpace(row.Password) == password {
			return row.Teacher, nil
		}
	}
	return models.Teacher{}, appErrors.ErrInvalidCredentials
}

// Login authenticates a teacher and opens a session: the credential pair is
// persisted under a fresh session id so later requests can rebuild state
// without re-entering the password, and a token bound to that id is issued.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	teacher, err := s.Authenticate(snapshot, username, password)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: strings.TrimSpace(password)}
	if err := s.sessions.Save(ctx, sessionID, creds); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan sesi")
	}

	token, expiresAt, err := s.generateToken(sessionID, teacher)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat token")
	}

	s.registry.Put(sessionID, NewSessionState(teacher, snapshot))
	s.logger.Info("teacher logged in", zap.String("username", teacher.Username))

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Teacher: teacher}, nil
}

// Resume returns the live state for a session, rebuilding it silently from
// the persisted credential pair when the in-memory copy is gone (restart,
// eviction). Every failure along the replay collapses to ErrUnauthorized so
// the caller simply re-authenticates.
func (s *AuthService) Resume(ctx context.Context, sessionID string) (*SessionState, error) {
	if state, ok := s.registry.Get(sessionID); ok {
		return state, nil
	}

	creds, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}

	snapshot, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logger.Warn("session replay ingest failed", zap.Error(err))
		return nil, appErrors.ErrUnauthorized
	}

	teacher, err := s.Authenticate(snapshot, creds.Username, creds.Password)
	if err != nil {
		return nil, appErrors.ErrUnauthorized
	}

	state := NewSessionState(teacher, snapshot)
	s.registry.Put(sessionID, state)
	return state, nil
}

// Logout closes a session on both sides: the persisted credential pair and
// the in-memory state.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("session delete failed", zap.Error(err))
	}
	s.registry.Delete(sessionID)
	return nil
}

// RefreshCredentials rewrites the persisted credential pair after a profile
// update. Blank fields keep their previous value so a username-only change
// does not orphan the stored password.
func (s *AuthService) RefreshCredentials(ctx context.Context, sessionID, username, password string) error {
	current, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		current = &models.Credentials{}
	}
	if username = strings.TrimSpace(username); username == "" {
		username = current.Username
	}
	if password = strings.TrimSpace(password); password == "" {
		password = current.Password
	}
	return s.sessions.Save(ctx, sessionID, models.Credentials{Username: username, Password: password})
}

// ValidateToken parses and validates an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) generateToken(sessionID string, teacher models.Teacher) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &models.JWTClaims{
		SessionID: sessionID,
		Username:  teacher.Username,
		Name:      teacher.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   teacher.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
