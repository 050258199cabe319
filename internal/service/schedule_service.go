package service

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
	"github.com/surat-tugas/portal-api/internal/normalize"
)

// ScheduleFilter narrows a schedule view. Month takes a "2006-01" key; Day
// takes a locale day name matched without case.
type ScheduleFilter struct {
	Month string
	Day   string
}

// Schedule is the full derived view over one teacher's assignments.
type Schedule struct {
	Entries []models.SessionEntry  `json:"entries"`
	Groups  []models.ScheduleGroup `json:"groups"`
	Stats   models.ScheduleStats   `json:"stats"`
}

// ScheduleService derives per-teacher schedule views out of a snapshot. All
// temporal classification happens against a midnight anchor so that any
// session dated today counts as today regardless of clock time.
type ScheduleService struct {
	locale normalize.Locale
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService constructs a schedule service.
func NewScheduleService(locale normalize.Locale, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{locale: locale, logger: logger, now: time.Now}
}

// Build produces the schedule view for one teacher, optionally filtered.
func (s *ScheduleService) Build(snapshot *models.Snapshot, teacher models.Teacher, filter ScheduleFilter) Schedule {
	anchor := normalize.Midnight(s.now())

	entries := s.Flatten(snapshot.Assignments, teacher, anchor)
	entries = s.applyFilter(entries, filter)
	s.sortEntries(entries, anchor)

	return Schedule{
		Entries: entries,
		Groups:  s.Group(entries),
		Stats:   s.Stats(entries),
	}
}

// Flatten turns the teacher's assignment rows into one entry per non-empty
// session slot. Slots holding only "-" are placeholders and are skipped.
// Slot indices are 1-based to match the sheet column headings.
func (s *ScheduleService) Flatten(assignments []models.Assignment, teacher models.Teacher, anchor time.Time) []models.SessionEntry {
	username := normalize.Fold(teacher.Username)
	entries := make([]models.SessionEntry, 0)
	for _, assignment := range assignments {
		if normalize.Fold(assignment.Username) != username {
			continue
		}
		for i, topic := range assignment.Sessions {
			topic = strings.TrimSpace(topic)
			if topic == "" || topic == "-" {
				continue
			}
			entries = append(entries, models.SessionEntry{
				DateLabel:   assignment.DateLabel,
				Date:        assignment.Date,
				SlotIndex:   i + 1,
				Topic:       topic,
				Status:      classify(assignment.Date, anchor),
				TeacherCode: assignment.TeacherCode,
			})
		}
	}
	return entries
}

// Stats aggregates counts over a flattened entry set. Dateless entries count
// toward the total only.
func (s *ScheduleService) Stats(entries []models.SessionEntry) models.ScheduleStats {
	stats := models.ScheduleStats{Total: len(entries)}
	for _, entry := range entries {
		switch entry.Status {
		case models.SessionToday:
			stats.Today++
		case models.SessionUpcoming:
			stats.Upcoming++
		case models.SessionPast:
			stats.Past++
		}
	}
	return stats
}

// Group collects entries sharing a calendar date, preserving the order in
// which each date first appears in the entry list. Dated entries key on the
// date itself; dateless entries key on their raw label.
func (s *ScheduleService) Group(entries []models.SessionEntry) []models.ScheduleGroup {
	groups := make([]models.ScheduleGroup, 0)
	index := make(map[string]int)
	for _, entry := range entries {
		key := entry.DateLabel
		if entry.Date != nil {
			key = entry.Date.Format(time.RFC3339)
		}
		at, ok := index[key]
		if !ok {
			at = len(groups)
			index[key] = at
			groups = append(groups, models.ScheduleGroup{
				DateLabel:   entry.DateLabel,
				Date:        entry.Date,
				Status:      entry.Status,
				TeacherCode: entry.TeacherCode,
			})
		}
		groups[at].Sessions = append(groups[at].Sessions, models.GroupSession{
			SlotIndex: entry.SlotIndex,
			Topic:     entry.Topic,
		})
	}
	return groups
}

func (s *ScheduleService) applyFilter(entries []models.SessionEntry, filter ScheduleFilter) []models.SessionEntry {
	if filter.Month == "" && filter.Day == "" {
		return entries
	}
	day := strings.ToLower(strings.TrimSpace(filter.Day))
	filtered := make([]models.SessionEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Date == nil {
			continue
		}
		if filter.Month != "" && entry.Date.Format("2006-01") != filter.Month {
			continue
		}
		if day != "" && strings.ToLower(s.dayName(*entry.Date)) != day {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func (s *ScheduleService) dayName(t time.Time) string {
	return s.locale.DayNames[int(t.Weekday())]
}

// sortEntries orders a schedule for display: everything dated today or later
// first by ascending distance from the anchor, then past sessions by how
// recently they happened, then dateless entries.
func (s *ScheduleService) sortEntries(entries []models.SessionEntry, anchor time.Time) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date == nil || b.Date == nil {
			return b.Date == nil && a.Date != nil
		}
		diffA := a.Date.Sub(anchor)
		diffB := b.Date.Sub(anchor)
		switch {
		case diffA >= 0 && diffB >= 0:
			return diffA < diffB
		case diffA >= 0:
			return true
		case diffB >= 0:
			return false
		default:
			return diffA > diffB
		}
	})
}

func classify(date *time.Time, anchor time.Time) models.SessionStatus {
	if date == nil {
		return models.SessionNoDate
	}
	switch day := normalize.Midnight(*date); {
	case day.Equal(anchor):
		return models.SessionToday
	case day.After(anchor):
		return models.SessionUpcoming
	default:
		return models.SessionPast
	}
}
