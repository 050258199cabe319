package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/normalize"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
)

const profileAction = "updateProfil"

type credentialRefresher interface {
	RefreshCredentials(ctx context.Context, sessionID, username, password string) error
}

// ProfileInput carries a requested profile change. A blank password means
// "keep the current one"; a non-blank password must be confirmed.
type ProfileInput struct {
	Name            string
	Subject         string
	Email           string
	WhatsApp        string
	Residence       string
	Username        string
	Password        string
	PasswordConfirm string
}

// ProfileService validates and delivers profile updates, then patches the
// session's local copy and the persisted credential pair so the teacher stays
// logged in under the new identity.
type ProfileService struct {
	gateway     writeGateway
	credentials credentialRefresher
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewProfileService constructs a profile service.
func NewProfileService(gateway writeGateway, credentials credentialRefresher, metrics *MetricsService, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{gateway: gateway, credentials: credentials, metrics: metrics, logger: logger}
}

// Update applies a profile change for the session teacher. Validation runs
// entirely locally; nothing is delivered unless the change is coherent and
// actually differs from the current record.
func (s *ProfileService) Update(ctx context.Context, state *SessionState, sessionID string, input ProfileInput) (models.Teacher, error) {
	current := state.Teacher()

	updated, err := s.merge(current, input)
	if err != nil {
		return models.Teacher{}, err
	}
	if updated == current {
		return models.Teacher{}, appErrors.Clone(appErrors.ErrValidation, "Tidak ada perubahan untuk disimpan.")
	}

	err = s.gateway.Deliver(ctx, s.profilePayload(updated))
	if s.metrics != nil {
		s.metrics.RecordDelivery(profileAction, err == nil)
	}
	if err != nil {
		s.logger.Warn("profile delivery failed", zap.String("kode", current.Code), zap.Error(err))
		return models.Teacher{}, appErrors.Wrap(err, appErrors.ErrDeliveryFailed.Code, appErrors.ErrDeliveryFailed.Status, appErrors.ErrDeliveryFailed.Message)
	}

	state.UpdateTeacher(updated)
	if err := s.credentials.RefreshCredentials(ctx, sessionID, updated.Username, input.Password); err != nil {
		s.logger.Warn("credential refresh failed", zap.Error(err))
	}
	return updated, nil
}

// merge validates the input against the current record and produces the
// candidate teacher. The username is not free-form: it must be exactly the
// WhatsApp number with its country or trunk prefix stripped.
func (s *ProfileService) merge(current models.Teacher, input ProfileInput) (models.Teacher, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	whatsapp := strings.Join(strings.Fields(input.WhatsApp), "")
	if name == "" || username == "" {
		return models.Teacher{}, appErrors.Clone(appErrors.ErrValidation, "Nama dan username wajib diisi.")
	}
	if username != normalize.PhoneToUsername(whatsapp) {
		return models.Teacher{}, appErrors.Clone(appErrors.ErrValidation, "Username harus sama dengan nomor WhatsApp tanpa 0/62/+62.")
	}

	password := current.Password
	if input.Password != "" {
		if input.Password != input.PasswordConfirm {
			return models.Teacher{}, appErrors.Clone(appErrors.ErrValidation, "Konfirmasi password tidak cocok.")
		}
		password = input.Password
	}

	return models.Teacher{
		Code:      current.Code,
		Name:      name,
		Subject:   strings.TrimSpace(input.Subject),
		Email:     strings.TrimSpace(input.Email),
		WhatsApp:  whatsapp,
		Residence: strings.TrimSpace(input.Residence),
		Username:  username,
		Password:  password,
	}, nil
}

// profilePayload duplicates each field under its machine key and its sheet
// heading, mirroring the request decision payload shape.
func (s *ProfileService) profilePayload(teacher models.Teacher) map[string]string {
	return map[string]string{
		"kodePengajar":  teacher.Code,
		"Kode Pengajar": teacher.Code,
		"nama":          teacher.Name,
		"Nama":          teacher.Name,
		"bidangStudi":   teacher.Subject,
		"Bidang Studi":  teacher.Subject,
		"email":         teacher.Email,
		"Email":         teacher.Email,
		"whatsapp":      teacher.WhatsApp,
		"noWhatsApp":    teacher.WhatsApp,
		"No.WhatsApp":   teacher.WhatsApp,
		"domisili":      teacher.Residence,
		"Domisili":      teacher.Residence,
		"username":      teacher.Username,
		"Username":      teacher.Username,
		"password":      teacher.Password,
		"Password":      teacher.Password,
		"action":        profileAction,
	}
}
