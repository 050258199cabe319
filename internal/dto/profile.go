package dto

import "github.com/surat-tugas/portal-api/internal/service"

// UpdateProfileRequest carries a requested profile change. Password fields
// are optional; leaving them blank keeps the current password.
type UpdateProfileRequest struct {
	Name            string `json:"nama" binding:"required"`
	Subject         string `json:"bidangStudi"`
	Email           string `json:"email" binding:"omitempty,email"`
	WhatsApp        string `json:"whatsapp" binding:"required"`
	Residence       string `json:"domisili"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"konfirmasiPassword"`
}

// ToProfileInput maps the request into the service input.
func (r UpdateProfileRequest) ToProfileInput() service.ProfileInput {
	return service.ProfileInput{
		Name:            r.Name,
		Subject:         r.Subject,
		Email:           r.Email,
		WhatsApp:        r.WhatsApp,
		Residence:       r.Residence,
		Username:        r.Username,
		Password:        r.Password,
		PasswordConfirm: r.PasswordConfirm,
	}
}
