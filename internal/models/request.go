package models

import (
	"strings"
	"time"
)

// Status values written back to the request sheet.
const (
	RequestStatusApproved = "Disetujui"
	RequestStatusRejected = "Ditolak"
)

// ServiceRequest is one pending or decided service request. Its ID is stable
// for the snapshot lifetime: the parsed submission timestamp when available,
// else the raw timestamp, else a positional fallback.
type ServiceRequest struct {
	ID           string     `json:"id"`
	NIS          string     `json:"nis"`
	StudentName  string     `json:"nama_siswa"`
	Branch       string     `json:"cabang"`
	DateLabel    string     `json:"tanggal"`
	DateRaw      string     `json:"tanggal_raw"`
	DateISO      string     `json:"tanggal_iso"`
	DateDMY      string     `json:"tanggal_dmy"`
	Date         *time.Time `json:"date,omitempty"`
	Subject      string     `json:"mata_pelajaran"`
	TeacherName  string     `json:"pengajar"`
	Purpose      string     `json:"keperluan"`
	Status       string     `json:"status"`
	ApprovedDate string     `json:"tanggal_disetujui"`
	ApprovedTime string     `json:"jam_disetujui"`
	Timestamp    string     `json:"timestamp"`
	TimestampRaw string     `json:"timestamp_raw"`
}

// Pending reports whether the request still awaits a decision. A blank status
// counts as pending alongside the case-insensitive synonyms.
func (r ServiceRequest) Pending() bool {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	return status == "" || status == "menunggu" || status == "pending"
}
