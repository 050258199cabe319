package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/normalize"
	"github.com/surat-tugas/portal-api/internal/sheets"
)

type feedFetcher interface {
	FetchAll(ctx context.Context) (*sheets.FeedSet, error)
}

// SheetRepository turns the four raw feeds into one typed snapshot. Header
// resolution happens once per table here; everything downstream works with
// named fields instead of positional cells.
type SheetRepository struct {
	client feedFetcher
	locale normalize.Locale
	logger *zap.Logger
}

// NewSheetRepository constructs a sheet repository.
func NewSheetRepository(client feedFetcher, locale normalize.Locale, logger *zap.Logger) *SheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetRepository{client: client, locale: locale, logger: logger}
}

// Snapshot fetches all four sheets and reconciles them into typed entity
// collections. Any feed failing fails the whole ingest.
func (r *SheetRepository) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	set, err := r.client.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingest sheets: %w", err)
	}

	snapshot := &models.Snapshot{
		Teachers:    r.mapTeachers(set.Teachers),
		Assignments: r.mapAssignments(set.Assignments),
		ServiceLogs: r.mapServiceLogs(set.ServiceLog),
		Requests:    r.mapRequests(set.Requests),
		FetchedAt:   time.Now(),
	}

	r.logger.Info("snapshot ingested",
		zap.Int("teachers", len(snapshot.Teachers)),
		zap.Int("assignments", len(snapshot.Assignments)),
		zap.Int("service_logs", len(snapshot.ServiceLogs)),
		zap.Int("requests", len(snapshot.Requests)))

	return snapshot, nil
}

func (r *SheetRepository) mapTeachers(table *sheets.Table) []models.TeacherRow {
	codeIdx := table.ColumnIndex("Kode Pengajar")
	nameIdx := table.ColumnIndex("Nama")
	subjectIdx := table.ColumnIndex("Bidang Studi")
	emailIdx := table.ColumnIndex("Email")
	waIdx := table.ColumnIndex("No.WhatsApp", "No WhatsApp")
	residenceIdx := table.ColumnIndex("Domisili")
	loginIdx := table.ColumnIndex("Username")
	passwordIdx := table.ColumnIndex("Password")

	teachers := make([]models.TeacherRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		whatsapp := table.Cell(row, waIdx)
		loginName := table.Cell(row, loginIdx)

		identifierSource := whatsapp
		if identifierSource == "" {
			identifierSource = loginName
		}

		teachers = append(teachers, models.TeacherRow{
			Teacher: models.Teacher{
				Code:      table.Cell(row, codeIdx),
				Name:      table.Cell(row, nameIdx),
				Subject:   table.Cell(row, subjectIdx),
				Email:     table.Cell(row, emailIdx),
				WhatsApp:  whatsapp,
				Residence: table.Cell(row, residenceIdx),
				Username:  normalize.PhoneToUsername(identifierSource),
				Password:  table.Cell(row, passwordIdx),
			},
			LoginName: loginName,
		})
	}
	return teachers
}

func (r *SheetRepository) mapAssignments(table *sheets.Table) []models.Assignment {
	usernameIdx := table.ColumnIndex("Username")
	codeIdx := table.ColumnIndex("Kode Pengajar")
	dateIdx := table.ColumnIndex("Tanggal")
	slotIdx := make([]int, models.SessionSlots)
	for i := range slotIdx {
		slotIdx[i] = table.ColumnIndex(fmt.Sprintf("Sesi %d", i+1))
	}

	assignments := make([]models.Assignment, 0, len(table.Rows))
	for _, row := range table.Rows {
		rawDate := table.Cell(row, dateIdx)
		date := normalize.ParseDate(rawDate)
		label := rawDate
		if date != nil {
			label = r.locale.DateLabel(*date)
		}

		sessions := make([]string, models.SessionSlots)
		for i, idx := range slotIdx {
			sessions[i] = table.Cell(row, idx)
		}

		assignments = append(assignments, models.Assignment{
			Username:    table.Cell(row, usernameIdx),
			TeacherCode: table.Cell(row, codeIdx),
			DateLabel:   label,
			Date:        date,
			Sessions:    sessions,
		})
	}
	return assignments
}

func (r *SheetRepository) mapServiceLogs(table *sheets.Table) []models.ServiceLog {
	nameIdx := table.ColumnIndex("Nama")
	durationIdx := table.ColumnIndex("Durasi")
	branchIdx := table.ColumnIndex("Cabang")

	logs := make([]models.ServiceLog, 0, len(table.Rows))
	for _, row := range table.Rows {
		logs = append(logs, models.ServiceLog{
			Name:     table.Cell(row, nameIdx),
			Duration: normalize.ParseDuration(table.Cell(row, durationIdx)),
			Branch:   table.Cell(row, branchIdx),
		})
	}
	return logs
}

func (r *SheetRepository) mapRequests(table *sheets.Table) []models.ServiceRequest {
	nisIdx := table.ColumnIndex("Nis")
	studentIdx := table.ColumnIndex("Nama Siswa")
	branchIdx := table.ColumnIndex("Cabang")
	dateIdx := table.ColumnIndex("Tanggal")
	subjectIdx := table.ColumnIndex("Mata Pelajaran")
	teacherIdx := table.ColumnIndex("Pengajar")
	purposeIdx := table.ColumnIndex("Keperluan")
	statusIdx := table.ColumnIndex("Status")
	// the sheet has carried a misspelled header for these two at times
	approvedDateIdx := table.ColumnIndex("Tanggal disetujui", "Tanggal distujui")
	approvedTimeIdx := table.ColumnIndex("Jam disetujui", "Jam distujui")
	timestampIdx := table.ColumnIndex("Timestamp")

	requests := make([]models.ServiceRequest, 0, len(table.Rows))
	seen := make(map[string]struct{}, len(table.Rows))
	for i, row := range table.Rows {
		rawDate := table.Cell(row, dateIdx)
		date := normalize.ParseDate(rawDate)
		label := rawDate
		if date != nil {
			label = r.locale.DateLabel(*date)
		}

		rawTimestamp := table.Cell(row, timestampIdx)
		timestamp := rawTimestamp
		if parsed := normalize.ParseDateTime(rawTimestamp); parsed != nil {
			timestamp = parsed.Format(time.RFC3339)
		}

		id := timestamp
		if id == "" {
			student := table.Cell(row, studentIdx)
			if student == "" {
				student = "permintaan"
			}
			id = fmt.Sprintf("%s-%d", student, i)
		}
		if _, dup := seen[id]; dup {
			id = fmt.Sprintf("%s-%d", id, i)
		}
		seen[id] = struct{}{}

		requests = append(requests, models.ServiceRequest{
			ID:           id,
			NIS:          table.Cell(row, nisIdx),
			StudentName:  table.Cell(row, studentIdx),
			Branch:       table.Cell(row, branchIdx),
			DateLabel:    label,
			DateRaw:      rawDate,
			DateISO:      normalize.ISODate(rawDate),
			DateDMY:      normalize.DMYDate(rawDate),
			Date:         date,
			Subject:      table.Cell(row, subjectIdx),
			TeacherName:  table.Cell(row, teacherIdx),
			Purpose:      table.Cell(row, purposeIdx),
			Status:       table.Cell(row, statusIdx),
			ApprovedDate: table.Cell(row, approvedDateIdx),
			ApprovedTime: table.Cell(row, approvedTimeIdx),
			Timestamp:    timestamp,
			TimestampRaw: rawTimestamp,
		})
	}
	return requests
}
