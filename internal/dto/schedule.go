package dto

import (
	"time"

	"github.com/surat-tugas/portal-api/internal/service"
)

// ScheduleEntry is one session slot in a schedule response.
type ScheduleEntry struct {
	DateLabel string `json:"tanggal"`
	DateISO   string `json:"tanggalISO,omitempty"`
	SlotIndex int    `json:"sesiKe"`
	Topic     string `json:"materi"`
	Status    string `json:"status"`
}

// ScheduleGroup bundles the sessions of one calendar date.
type ScheduleGroup struct {
	DateLabel string            `json:"tanggal"`
	DateISO   string            `json:"tanggalISO,omitempty"`
	Status    string            `json:"status"`
	Sessions  []ScheduleSession `json:"sesi"`
}

// ScheduleSession is a slot/topic pair within a group.
type ScheduleSession struct {
	SlotIndex int    `json:"sesiKe"`
	Topic     string `json:"materi"`
}

// ScheduleStats carries the aggregate counters.
type ScheduleStats struct {
	Total    int `json:"total"`
	Today    int `json:"hariIni"`
	Upcoming int `json:"akanDatang"`
	Past     int `json:"terlewat"`
}

// ScheduleResponse is the full schedule view for one teacher.
type ScheduleResponse struct {
	Entries []ScheduleEntry `json:"entries"`
	Groups  []ScheduleGroup `json:"groups"`
	Stats   ScheduleStats   `json:"stats"`
}

// FromSchedule maps a derived schedule into its response shape.
func FromSchedule(schedule service.Schedule) ScheduleResponse {
	entries := make([]ScheduleEntry, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		entries = append(entries, ScheduleEntry{
			DateLabel: entry.DateLabel,
			DateISO:   isoDate(entry.Date),
			SlotIndex: entry.SlotIndex,
			Topic:     entry.Topic,
			Status:    string(entry.Status),
		})
	}

	groups := make([]ScheduleGroup, 0, len(schedule.Groups))
	for _, group := range schedule.Groups {
		sessions := make([]ScheduleSession, 0, len(group.Sessions))
		for _, session := range group.Sessions {
			sessions = append(sessions, ScheduleSession{SlotIndex: session.SlotIndex, Topic: session.Topic})
		}
		groups = append(groups, ScheduleGroup{
			DateLabel: group.DateLabel,
			DateISO:   isoDate(group.Date),
			Status:    string(group.Status),
			Sessions:  sessions,
		})
	}

	return ScheduleResponse{
		Entries: entries,
		Groups:  groups,
		Stats: ScheduleStats{
			Total:    schedule.Stats.Total,
			Today:    schedule.Stats.Today,
			Upcoming: schedule.Stats.Upcoming,
			Past:     schedule.Stats.Past,
		},
	}
}

func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
