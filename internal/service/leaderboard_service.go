package service

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/models"
)

// leaderboardSize caps each ranking.
const leaderboardSize = 5

// LeaderboardService aggregates the service log into three independent
// rankings. Rows with a blank subject are excluded from that ranking only, so
// a row missing its name can still count toward its branch.
type LeaderboardService struct {
	logger *zap.Logger
}

// NewLeaderboardService constructs a leaderboard service.
func NewLeaderboardService(logger *zap.Logger) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaderboardService{logger: logger}
}

// Build computes the leaderboard over a snapshot's service log. Ties keep the
// order in which each key first appeared in the log.
func (s *LeaderboardService) Build(snapshot *models.Snapshot) models.Leaderboard {
	counts := make(map[string]int)
	durations := make(map[string]float64)
	branches := make(map[string]int)
	nameOrder := make([]string, 0)
	branchOrder := make([]string, 0)

	for _, log := range snapshot.ServiceLogs {
		name := strings.TrimSpace(log.Name)
		if name != "" {
			if _, seen := counts[name]; !seen {
				nameOrder = append(nameOrder, name)
			}
			counts[name]++
			durations[name] += log.Duration
		}

		branch := strings.TrimSpace(log.Branch)
		if branch != "" {
			if _, seen := branches[branch]; !seen {
				branchOrder = append(branchOrder, branch)
			}
			branches[branch]++
		}
	}

	mostServices := make([]models.ServiceCount, 0, len(nameOrder))
	mostDuration := make([]models.ServiceDuration, 0, len(nameOrder))
	for _, name := range nameOrder {
		mostServices = append(mostServices, models.ServiceCount{Name: name, Count: counts[name]})
		mostDuration = append(mostDuration, models.ServiceDuration{Name: name, TotalDuration: durations[name]})
	}
	topBranches := make([]models.BranchCount, 0, len(branchOrder))
	for _, branch := range branchOrder {
		topBranches = append(topBranches, models.BranchCount{Branch: branch, Count: branches[branch]})
	}

	sort.SliceStable(mostServices, func(i, j int) bool {
		return mostServices[i].Count > mostServices[j].Count
	})
	sort.SliceStable(mostDuration, func(i, j int) bool {
		return mostDuration[i].TotalDuration > mostDuration[j].TotalDuration
	})
	sort.SliceStable(topBranches, func(i, j int) bool {
		return topBranches[i].Count > topBranches[j].Count
	})

	return models.Leaderboard{
		MostServices: truncate(mostServices),
		MostDuration: truncate(mostDuration),
		TopBranches:  truncate(topBranches),
	}
}

func truncate[T any](ranked []T) []T {
	if len(ranked) > leaderboardSize {
		return ranked[:leaderboardSize]
	}
	return ranked
}
