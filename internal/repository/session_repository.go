package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/surat-tugas/portal-api/internal/models"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionRepository persists the credential pair behind each issued token so
// a later request can replay it silently.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Save stores the credential pair under the session id.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, creds models.Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sessionID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+sessionID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", sessionID, err)
	}
	return nil
}

// Find loads the credential pair for a session id. Absent or malformed
// records report ErrCacheMiss so callers skip the silent replay entirely.
func (r *SessionRepository) Find(ctx context.Context, sessionID string) (*models.Credentials, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var creds models.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, appErrors.ErrCacheMiss
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, appErrors.ErrCacheMiss
	}
	return &creds, nil
}

// Delete drops a session's credential pair.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
