package dto

import (
	"time"

	"github.com/surat-tugas/portal-api/internal/models"
)

// LoginRequest holds credentials for authenticating a teacher.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token and teacher info.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Teacher   TeacherProfile `json:"teacher"`
}

// TeacherProfile describes the authenticated teacher in responses. The
// password never leaves the server.
type TeacherProfile struct {
	Code      string `json:"kodePengajar"`
	Name      string `json:"nama"`
	Subject   string `json:"bidangStudi"`
	Email     string `json:"email"`
	WhatsApp  string `json:"whatsapp"`
	Residence string `json:"domisili"`
	Username  string `json:"username"`
}

// FromTeacher maps a teacher record into its response shape.
func FromTeacher(teacher models.Teacher) TeacherProfile {
	return TeacherProfile{
		Code:      teacher.Code,
		Name:      teacher.Name,
		Subject:   teacher.Subject,
		Email:     teacher.Email,
		WhatsApp:  teacher.WhatsApp,
		Residence: teacher.Residence,
		Username:  teacher.Username,
	}
}
