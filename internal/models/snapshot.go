package models

import "time"

// Snapshot is one complete ingest of the four source sheets, typed and
// normalised. Derived views (schedule, leaderboard, filtered requests) are
// pure recomputations over a snapshot; the snapshot itself is only replaced
// wholesale by a fresh ingest, or patched locally after a confirmed write.
type Snapshot struct {
	Teachers    []TeacherRow     `json:"teachers"`
	Assignments []Assignment     `json:"assignments"`
	ServiceLogs []ServiceLog     `json:"service_logs"`
	Requests    []ServiceRequest `json:"requests"`
	FetchedAt   time.Time        `json:"fetched_at"`
}
