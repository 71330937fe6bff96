package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnoutPercentage(t *testing.T) {
	tests := []struct {
		name      string
		votesCast int
		electors  int
		want      float64
	}{
		{"normal", 650, 1000, 65.00},
		{"rounds to two decimals", 1, 3, 33.33},
		{"zero electors", 500, 0, 0},
		{"negative electors", 500, -1, 0},
		{"full turnout", 800, 800, 100},
		{"zero votes", 0, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TurnoutPercentage(tt.votesCast, tt.electors))
		})
	}
}

func TestVoteSharePercentage(t *testing.T) {
	assert.Equal(t, 61.54, VoteSharePercentage(400, 650))
	assert.Equal(t, 38.46, VoteSharePercentage(250, 650))
	assert.Equal(t, float64(0), VoteSharePercentage(100, 0))
	assert.Equal(t, float64(100), VoteSharePercentage(650, 650))
}

func TestWinningEntry(t *testing.T) {
	t.Run("maximum votes wins", func(t *testing.T) {
		winner, ok := WinningEntry([]ResultEntry{
			{CandidateID: 3, Votes: 250},
			{CandidateID: 1, Votes: 400},
			{CandidateID: 2, Votes: 120},
		})
		require.True(t, ok)
		assert.Equal(t, 1, winner.CandidateID)
		assert.Equal(t, 400, winner.Votes)
	})

	t.Run("tie breaks to lowest candidate id", func(t *testing.T) {
		entries := []ResultEntry{
			{CandidateID: 7, Votes: 300},
			{CandidateID: 2, Votes: 300},
			{CandidateID: 5, Votes: 300},
		}
		winner, ok := WinningEntry(entries)
		require.True(t, ok)
		assert.Equal(t, 2, winner.CandidateID)

		// Deterministic across repeated calls with the same input order
		again, _ := WinningEntry(entries)
		assert.Equal(t, winner, again)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := WinningEntry(nil)
		assert.False(t, ok)
	})
}

func TestVictoryMargin(t *testing.T) {
	assert.Equal(t, 150, VictoryMargin([]ResultEntry{
		{CandidateID: 1, Votes: 400},
		{CandidateID: 2, Votes: 250},
	}))
	assert.Equal(t, 150, VictoryMargin([]ResultEntry{
		{CandidateID: 2, Votes: 250},
		{CandidateID: 1, Votes: 400},
		{CandidateID: 3, Votes: 100},
	}))
	assert.Equal(t, 0, VictoryMargin([]ResultEntry{{CandidateID: 1, Votes: 400}}))
	assert.Equal(t, 0, VictoryMargin(nil))
	assert.Equal(t, 0, VictoryMargin([]ResultEntry{
		{CandidateID: 1, Votes: 300},
		{CandidateID: 2, Votes: 300},
	}))
}

func TestHeatmapNormalize(t *testing.T) {
	t.Run("linear rescale", func(t *testing.T) {
		assert.Equal(t, []int{0, 50, 100}, HeatmapNormalize([]float64{0, 50, 100}))
		assert.Equal(t, []int{0, 25, 50, 75, 100}, HeatmapNormalize([]float64{10, 20, 30, 40, 50}))
	})

	t.Run("degenerate range maps to 50", func(t *testing.T) {
		assert.Equal(t, []int{50, 50, 50}, HeatmapNormalize([]float64{5, 5, 5}))
	})

	t.Run("single value", func(t *testing.T) {
		assert.Equal(t, []int{50}, HeatmapNormalize([]float64{42}))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, HeatmapNormalize(nil))
	})
}

func TestDemographicPercentages(t *testing.T) {
	m, f, o := DemographicPercentages(330, 310, 10, 650)
	assert.Equal(t, 50.77, m)
	assert.Equal(t, 47.69, f)
	assert.Equal(t, 1.54, o)

	m, f, o = DemographicPercentages(10, 10, 0, 0)
	assert.Zero(t, m)
	assert.Zero(t, f)
	assert.Zero(t, o)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 61.54, Round2(61.538461))
	assert.Equal(t, 65.0, Round2(65.004))
	assert.Equal(t, -1.23, Round2(-1.234))
}
