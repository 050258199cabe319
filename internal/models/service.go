package models

// ServiceLog is one row of historical service activity. It is never joined to
// an instructor; the leaderboard consumes it in aggregate only.
type ServiceLog struct {
	Name     string  `json:"nama"`
	Duration float64 `json:"durasi"`
	Branch   string  `json:"cabang"`
}

// ServiceCount ranks a subject name by number of service records.
type ServiceCount struct {
	Name  string `json:"nama"`
	Count int    `json:"jumlah"`
}

// ServiceDuration ranks a subject name by summed duration.
type ServiceDuration struct {
	Name          string  `json:"nama"`
	TotalDuration float64 `json:"total_durasi"`
}

// BranchCount ranks a branch by number of service records.
type BranchCount struct {
	Branch string `json:"cabang"`
	Count  int    `json:"jumlah"`
}

// Leaderboard holds the three independent top-N rankings.
type Leaderboard struct {
	MostServices []ServiceCount    `json:"pelayanan_terbanyak"`
	MostDuration []ServiceDuration `json:"durasi_terbanyak"`
	TopBranches  []BranchCount     `json:"cabang_terbanyak"`
}
