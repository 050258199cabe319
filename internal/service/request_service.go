package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/normalize"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

const requestAction = "update-permintaan"

type writeGateway interface {
	Deliver(ctx context.Context, payload map[string]string) error
}

// RequestService lists a teacher's service requests and pushes approve or
// reject decisions to the write endpoint. A per-session in-flight guard keeps
// a double-submitted decision from producing two deliveries.
type RequestService struct {
	gateway writeGateway
	metrics *MetricsService
	locale  normalize.Locale
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewRequestService constructs a request service.
func NewRequestService(gateway writeGateway, metrics *MetricsService, locale normalize.Locale, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		gateway:  gateway,
		metrics:  metrics,
		locale:   locale,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// ListForTeacher returns the session teacher's requests, most recent first
// with dateless rows trailing. With pendingOnly set, decided requests are
// dropped.
func (s *RequestService) ListForTeacher(state *SessionState, pendingOnly bool) []models.ServiceRequest {
	teacher := normalize.Fold(state.Teacher().Name)
	requests := make([]models.ServiceRequest, 0)
	for _, req := range state.Snapshot().Requests {
		if normalize.Fold(req.TeacherName) != teacher {
			continue
		}
		if pendingOnly && !req.Pending() {
			continue
		}
		requests = append(requests, req)
	}

	sort.SliceStable(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if a.Date == nil || b.Date == nil {
			return b.Date == nil && a.Date != nil
		}
		return a.Date.After(*b.Date)
	})
	return requests
}

// Approve marks a request approved and delivers the decision. The approval
// date and time are mandatory and validated before anything leaves the
// process; the session's local copy flips only after the delivery succeeds.
func (s *RequestService) Approve(ctx context.Context, state *SessionState, sessionID, requestID, approvedDate, approvedTime string) (models.ServiceRequest, error) {
	approvedDate = strings.TrimSpace(approvedDate)
	approvedTime = strings.TrimSpace(approvedTime)
	if approvedDate == "" || approvedTime == "" {
		return models.ServiceRequest{}, appErrors.Clone(appErrors.ErrValidation, "Tanggal dan jam persetujuan wajib diisi.")
	}
	approvedDate = s.locale.DateLabelValue(approvedDate)

	return s.decide(ctx, state, sessionID, requestID, models.RequestStatusApproved, approvedDate, approvedTime)
}

// Reject marks a request rejected and delivers the decision, clearing any
// previously entered approval fields.
func (s *RequestService) Reject(ctx context.Context, state *SessionState, sessionID, requestID string) (models.ServiceRequest, error) {
	return s.decide(ctx, state, sessionID, requestID, models.RequestStatusRejected, "", "")
}

func (s *RequestService) decide(ctx context.Context, state *SessionState, sessionID, requestID, status, approvedDate, approvedTime string) (models.ServiceRequest, error) {
	req, ok := state.FindRequest(requestID)
	if !ok || normalize.Fold(req.TeacherName) != normalize.Fold(state.Teacher().Name) {
		return models.ServiceRequest{}, appErrors.Clone(appErrors.ErrNotFound, "permintaan tidak ditemukan")
	}

	guard := sessionID + "|" + requestID
	if !s.acquire(guard) {
		return models.ServiceRequest{}, appErrors.ErrRequestInFlight
	}
	defer s.release(guard)

	err := s.gateway.Deliver(ctx, s.statusPayload(req, status, approvedDate, approvedTime))
	if s.metrics != nil {
		s.metrics.RecordDelivery(requestAction, err == nil)
	}
	if err != nil {
		s.logger.Warn("request decision delivery failed",
			zap.String("request_id", requestID), zap.String("status", status), zap.Error(err))
		return models.ServiceRequest{}, appErrors.Wrap(err, appErrors.ErrDeliveryFailed.Code, appErrors.ErrDeliveryFailed.Status, appErrors.ErrDeliveryFailed.Message)
	}

	updated, _ := state.UpdateRequest(requestID, func(r *models.ServiceRequest) {
		r.Status = status
		r.ApprovedDate = approvedDate
		r.ApprovedTime = approvedTime
	})
	return updated, nil
}

// statusPayload duplicates each field under its machine key and its sheet
// heading so either side of the write endpoint can resolve it.
func (s *RequestService) statusPayload(req models.ServiceRequest, status, approvedDate, approvedTime string) map[string]string {
	date := req.DateISO
	if date == "" {
		date = req.DateRaw
	}
	if date == "" {
		date = req.DateLabel
	}
	return map[string]string{
		"nis":              req.NIS,
		"namaSiswa":        req.StudentName,
		"Nama Siswa":       req.StudentName,
		"tanggal":          date,
		"tanggalISO":       req.DateISO,
		"tanggalDMY":       req.DateDMY,
		"tanggalRaw":       req.DateRaw,
		"status":           status,
		"tanggalDisetujui": approvedDate,
		"jamDisetujui":     approvedTime,
		"action":           requestAction,
	}
}

func (s *RequestService) acquire(guard string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[guard]; busy {
		return false
	}
	s.inFlight[guard] = struct{}{}
	return true
}

func (s *RequestService) release(guard string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, guard)
}
