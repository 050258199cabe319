package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

const snapshotCacheKey = "sheets:snapshot"

type snapshotSource interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SnapshotService loads the typed snapshot, short-circuiting through the
// cache so parallel logins do not hammer the upstream feeds.
type SnapshotService struct {
	source  snapshotSource
	cache   CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	enabled bool
	logger  *zap.Logger
}

// NewSnapshotService constructs a snapshot service.
func NewSnapshotService(source snapshotSource, cache CacheRepository, metrics *MetricsService, ttl time.Duration, enabled bool, logger *zap.Logger) *SnapshotService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{source: source, cache: cache, metrics: metrics, ttl: ttl, enabled: enabled, logger: logger}
}

// Load returns the freshest snapshot available. Ingest failures surface as a
// single blocking error; no partial snapshot is ever returned.
func (s *SnapshotService) Load(ctx context.Context) (*models.Snapshot, error) {
	if s.cacheEnabled() {
		var cached models.Snapshot
		start := time.Now()
		err := s.cache.Get(ctx, snapshotCacheKey, &cached)
		if err == nil {
			s.recordCache(true, time.Since(start))
			return &cached, nil
		}
		s.recordCache(false, time.Since(start))
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("snapshot cache read failed", zap.Error(err))
		}
	}

	start := time.Now()
	snapshot, err := s.source.Snapshot(ctx)
	if s.metrics != nil {
		s.metrics.RecordIngest(err == nil, time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSheetUnavailable.Code, appErrors.ErrSheetUnavailable.Status, appErrors.ErrSheetUnavailable.Message)
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, snapshotCacheKey, snapshot, s.ttl); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.Error(err))
		}
	}

	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next load re-ingests.
func (s *SnapshotService) Invalidate(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Delete(ctx, snapshotCacheKey); err != nil {
		s.logger.Warn("snapshot cache invalidation failed", zap.Error(err))
	}
}

func (s *SnapshotService) cacheEnabled() bool {
	return s.enabled && s.cache != nil
}

func (s *SnapshotService) recordCache(hit bool, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, duration)
	}
}
