package dto

import "github.com/surat-tugas/portal-api/internal/models"

// LeaderboardEntry ranks one subject in a leaderboard section.
type LeaderboardEntry struct {
	Name  string  `json:"nama"`
	Count int     `json:"jumlah,omitempty"`
	Total float64 `json:"totalDurasi,omitempty"`
}

// LeaderboardResponse holds the three independent rankings.
type LeaderboardResponse struct {
	MostServices []LeaderboardEntry `json:"pelayananTerbanyak"`
	MostDuration []LeaderboardEntry `json:"durasiTerbanyak"`
	TopBranches  []LeaderboardEntry `json:"cabangTerbanyak"`
}

// DashboardResponse is the landing view: the teacher, their schedule
// counters, how many requests await a decision, and the leaderboard.
type DashboardResponse struct {
	Teacher         TeacherProfile      `json:"teacher"`
	Stats           ScheduleStats       `json:"stats"`
	Upcoming        []ScheduleEntry     `json:"akanDatang"`
	PendingRequests int                 `json:"permintaanMenunggu"`
	Leaderboard     LeaderboardResponse `json:"leaderboard"`
}

// FromLeaderboard maps a computed leaderboard into its response shape.
func FromLeaderboard(board models.Leaderboard) LeaderboardResponse {
	mostServices := make([]LeaderboardEntry, 0, len(board.MostServices))
	for _, entry := range board.MostServices {
		mostServices = append(mostServices, LeaderboardEntry{Name: entry.Name, Count: entry.Count})
	}
	mostDuration := make([]LeaderboardEntry, 0, len(board.MostDuration))
	for _, entry := range board.MostDuration {
		mostDuration = append(mostDuration, LeaderboardEntry{Name: entry.Name, Total: entry.TotalDuration})
	}
	topBranches := make([]LeaderboardEntry, 0, len(board.TopBranches))
	for _, entry := range board.TopBranches {
		topBranches = append(topBranches, LeaderboardEntry{Name: entry.Branch, Count: entry.Count})
	}
	return LeaderboardResponse{
		MostServices: mostServices,
		MostDuration: mostDuration,
		TopBranches:  topBranches,
	}
}
