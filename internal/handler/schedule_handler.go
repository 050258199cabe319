package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surat-tugas/portal-api/internal/dto"
	"github.com/surat-tugas/portal-api/internal/service"
	appErrors "github.com/surat-tugas/portal-api/pkg/errors"
	"github.com/surat-tugas/portal-api/pkg/export"
	"github.com/surat-tugas/portal-api/pkg/response"
)

// ScheduleHandler serves the teaching schedule views and their exports.
type ScheduleHandler struct {
	auth      *service.AuthService
	schedules *service.ScheduleService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(auth *service.AuthService, schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		auth:      auth,
		schedules: schedules,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// List returns the teacher's schedule, optionally filtered by month
// ("2006-01") or locale day name.
func (h *ScheduleHandler) List(c *gin.Context) {
	state, _, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := service.ScheduleFilter{
		Month: c.Query("bulan"),
		Day:   c.Query("hari"),
	}
	schedule := h.schedules.Build(state.Snapshot(), state.Teacher(), filter)
	response.JSON(c, http.StatusOK, dto.FromSchedule(schedule))
}

// Export renders the schedule as a downloadable CSV or PDF document.
func (h *ScheduleHandler) Export(c *gin.Context) {
	state, _, err := sessionFromContext(c, h.auth)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := service.ScheduleFilter{
		Month: c.Query("bulan"),
		Day:   c.Query("hari"),
	}
	teacher := state.Teacher()
	schedule := h.schedules.Build(state.Snapshot(), teacher, filter)
	dataset := scheduleDataset(schedule)

	filename := fmt.Sprintf("jadwal-%s-%s", teacher.Code, time.Now().Format("20060102"))
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, fmt.Sprintf("Surat Tugas Mengajar - %s", teacher.Name))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format harus csv atau pdf"))
	}
}

func scheduleDataset(schedule service.Schedule) export.Dataset {
	rows := make([][]string, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		rows = append(rows, []string{
			entry.DateLabel,
			fmt.Sprintf("Sesi %d", entry.SlotIndex),
			entry.Topic,
			string(entry.Status),
		})
	}
	return export.Dataset{
		Headers: []string{"Tanggal", "Sesi", "Materi", "Status"},
		Rows:    rows,
	}
}
