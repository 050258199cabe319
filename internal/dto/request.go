package dto

import "github.com/surat-tugas/portal-api/internal/models"

// RequestItem is one service request in list responses.
type RequestItem struct {
	ID           string `json:"id"`
	NIS          string `json:"nis"`
	StudentName  string `json:"namaSiswa"`
	Branch       string `json:"cabang"`
	DateLabel    string `json:"tanggal"`
	DateISO      string `json:"tanggalISO,omitempty"`
	DateDMY      string `json:"tanggalDMY,omitempty"`
	Subject      string `json:"mataPelajaran"`
	Purpose      string `json:"keperluan"`
	Status       string `json:"status"`
	Pending      bool   `json:"menunggu"`
	ApprovedDate string `json:"tanggalDisetujui,omitempty"`
	ApprovedTime string `json:"jamDisetujui,omitempty"`
}

// ApproveRequest carries the mandatory approval date and time.
type ApproveRequest struct {
	ApprovedDate string `json:"tanggalDisetujui" binding:"required"`
	ApprovedTime string `json:"jamDisetujui" binding:"required"`
}

// FromRequest maps a service request into its response shape.
func FromRequest(req models.ServiceRequest) RequestItem {
	return RequestItem{
		ID:           req.ID,
		NIS:          req.NIS,
		StudentName:  req.StudentName,
		Branch:       req.Branch,
		DateLabel:    req.DateLabel,
		DateISO:      req.DateISO,
		DateDMY:      req.DateDMY,
		Subject:      req.Subject,
		Purpose:      req.Purpose,
		Status:       req.Status,
		Pending:      req.Pending(),
		ApprovedDate: req.ApprovedDate,
		ApprovedTime: req.ApprovedTime,
	}
}

// FromRequests maps a request slice preserving order.
func FromRequests(requests []models.ServiceRequest) []RequestItem {
	items := make([]RequestItem, 0, len(requests))
	for _, req := range requests {
		items = append(items, FromRequest(req))
	}
	return items
}
