package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surat-tugas/portal-api/internal/models"
)

func TestLeaderboardAggregatesThreeRankings(t *testing.T) {
	svc := NewLeaderboardService(nil)
	snapshot := &models.Snapshot{ServiceLogs: []models.ServiceLog{
		{Name: "Andi", Duration: 2, Branch: "Pusat"},
		{Name: "Budi", Duration: 1, Branch: "Timur"},
		{Name: " Andi ", Duration: 3, Branch: "Pusat"},
	}}

	board := svc.Build(snapshot)

	require.Len(t, board.MostServices, 2)
	assert.Equal(t, models.ServiceCount{Name: "Andi", Count: 2}, board.MostServices[0])
	assert.Equal(t, models.ServiceCount{Name: "Budi", Count: 1}, board.MostServices[1])

	require.Len(t, board.MostDuration, 2)
	assert.Equal(t, models.ServiceDuration{Name: "Andi", TotalDuration: 5}, board.MostDuration[0])
	assert.Equal(t, models.ServiceDuration{Name: "Budi", TotalDuration: 1}, board.MostDuration[1])

	require.Len(t, board.TopBranches, 2)
	assert.Equal(t, models.BranchCount{Branch: "Pusat", Count: 2}, board.TopBranches[0])
	assert.Equal(t, models.BranchCount{Branch: "Timur", Count: 1}, board.TopBranches[1])
}

func TestLeaderboardTiesKeepFirstSeenOrder(t *testing.T) {
	svc := NewLeaderboardService(nil)
	snapshot := &models.Snapshot{ServiceLogs: []models.ServiceLog{
		{Name: "Citra", Duration: 1, Branch: "Barat"},
		{Name: "Dewi", Duration: 1, Branch: "Selatan"},
	}}

	board := svc.Build(snapshot)
	require.Len(t, board.MostServices, 2)
	assert.Equal(t, "Citra", board.MostServices[0].Name)
	assert.Equal(t, "Dewi", board.MostServices[1].Name)
	assert.Equal(t, "Barat", board.TopBranches[0].Branch)
}

func TestLeaderboardExcludesBlanksPerRanking(t *testing.T) {
	svc := NewLeaderboardService(nil)
	snapshot := &models.Snapshot{ServiceLogs: []models.ServiceLog{
		{Name: "", Duration: 4, Branch: "Pusat"},
		{Name: "Eka", Duration: 2, Branch: "  "},
	}}

	board := svc.Build(snapshot)
	require.Len(t, board.MostServices, 1)
	assert.Equal(t, "Eka", board.MostServices[0].Name)
	require.Len(t, board.TopBranches, 1)
	assert.Equal(t, "Pusat", board.TopBranches[0].Branch)
}

func TestLeaderboardCapsAtFive(t *testing.T) {
	logs := make([]models.ServiceLog, 0, 8)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Pengajar %d", i)
		for j := 0; j <= i; j++ {
			logs = append(logs, models.ServiceLog{Name: name, Duration: 1, Branch: "Pusat"})
		}
	}
	board := NewLeaderboardService(nil).Build(&models.Snapshot{ServiceLogs: logs})

	require.Len(t, board.MostServices, 5)
	assert.Equal(t, "Pengajar 7", board.MostServices[0].Name)
	assert.Equal(t, 8, board.MostServices[0].Count)
	assert.Equal(t, "Pengajar 3", board.MostServices[4].Name)
	require.Len(t, board.MostDuration, 5)
	require.Len(t, board.TopBranches, 1)
}
