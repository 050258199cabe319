package models

import "time"

// SessionSlots is the fixed number of session columns on the assignment sheet.
const SessionSlots = 10

// SessionStatus classifies a session relative to the anchor date.
type SessionStatus string

const (
	SessionNoDate   SessionStatus = "Tanpa tanggal"
	SessionToday    SessionStatus = "Hari ini"
	SessionUpcoming SessionStatus = "Akan datang"
	SessionPast     SessionStatus = "Terlewat"
)

// Assignment is one assignment-sheet row owned by an instructor: a calendar
// date plus up to ten ordered session slots.
type Assignment struct {
	Username    string     `json:"username"`
	TeacherCode string     `json:"kode_pengajar"`
	DateLabel   string     `json:"tanggal"`
	Date        *time.Time `json:"date,omitempty"`
	Sessions    []string   `json:"sesi"`
}

// SessionEntry is one non-empty session slot flattened out of an Assignment.
type SessionEntry struct {
	DateLabel   string        `json:"tanggal"`
	Date        *time.Time    `json:"date,omitempty"`
	SlotIndex   int           `json:"sesi_ke"`
	Topic       string        `json:"materi"`
	Status      SessionStatus `json:"status"`
	TeacherCode string        `json:"kode_pengajar"`
}

// GroupSession is a (slot index, topic) pair within a ScheduleGroup.
type GroupSession struct {
	SlotIndex int    `json:"sesi_ke"`
	Topic     string `json:"materi"`
}

// ScheduleGroup collects the sessions sharing one calendar date. Group order
// follows first appearance of the date key, not a date sort.
type ScheduleGroup struct {
	DateLabel   string         `json:"tanggal"`
	Date        *time.Time     `json:"date,omitempty"`
	Status      SessionStatus  `json:"status"`
	TeacherCode string         `json:"kode_pengajar"`
	Sessions    []GroupSession `json:"sessions"`
}

// ScheduleStats are aggregate counts over a session collection. Entries
// without a parsed date count toward the total only.
type ScheduleStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
}
