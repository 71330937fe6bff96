package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterLabel(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		turnout  float64
		electors int
		want     string
	}{
		{"high turnout large booth", 75, 900, "High_Turnout_Large"},
		{"low turnout small booth", 40, 300, "Low_Turnout_Small"},
		{"medium turnout large booth", 55, 1200, "Medium_Turnout_Large"},
		{"medium turnout small booth", 69.99, 800, "Medium_Turnout_Small"},
		{"boundary high turnout", 70, 801, "High_Turnout_Large"},
		{"boundary medium turnout", 50, 100, "Medium_Turnout_Small"},
		{"just below medium", 49.99, 100, "Low_Turnout_Small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClusterLabel(tt.turnout, tt.electors, th))
		})
	}
}

func TestCompetitivenessCategory(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name       string
		winningPct float64
		turnout    float64
		electors   int
		want       string
	}{
		// First matching rule wins even when turnout/electors would also match
		{"competitive beats everything", 52, 80, 500, CategoryHighlyCompetitive},
		{"competitive beats low turnout", 40, 30, 2000, CategoryHighlyCompetitive},
		{"low turnout next", 60, 45, 2000, CategoryLowTurnoutOpportunity},
		{"high density next", 60, 70, 1500, CategoryHighDensityStrategic},
		{"stronghold otherwise", 70, 70, 500, CategoryStronghold},
		{"boundary win pct is not competitive", 55, 70, 500, CategoryStronghold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompetitivenessCategory(tt.winningPct, tt.turnout, tt.electors, th))
		})
	}
}

func TestCompetitivenessCategoryCustomThresholds(t *testing.T) {
	th := Thresholds{
		CompetitiveWinPct:   60,
		LowTurnoutPct:       40,
		HighDensityElectors: 500,
	}
	assert.Equal(t, CategoryHighlyCompetitive, CompetitivenessCategory(58, 80, 100, th))
	assert.Equal(t, CategoryHighDensityStrategic, CompetitivenessCategory(65, 70, 600, th))
}

func TestConstituencyCategory(t *testing.T) {
	assert.Equal(t, "SC", ConstituencyCategory("Hastinapur (SC)"))
	assert.Equal(t, "ST", ConstituencyCategory("Dharampur (ST)"))
	assert.Equal(t, "GEN", ConstituencyCategory("Lucknow West"))
	assert.Equal(t, "SC", ConstituencyCategory("rampur (sc)"))
}

func TestBoothNumberKey(t *testing.T) {
	key, ok := BoothNumberKey("123")
	assert.True(t, ok)
	assert.Equal(t, 123, key)

	key, ok = BoothNumberKey("45A")
	assert.True(t, ok)
	assert.Equal(t, 45, key)

	key, ok = BoothNumberKey(" 7 ")
	assert.True(t, ok)
	assert.Equal(t, 7, key)

	_, ok = BoothNumberKey("ANNEX")
	assert.False(t, ok)
}

func TestLessBoothNumber(t *testing.T) {
	// Numeric ordering, not lexicographic
	assert.True(t, LessBoothNumber("2", "10"))
	assert.False(t, LessBoothNumber("10", "2"))
	// Same numeric key falls back to text
	assert.True(t, LessBoothNumber("10", "10A"))
	// Numeric sorts before non-numeric
	assert.True(t, LessBoothNumber("99", "ANNEX"))
	assert.False(t, LessBoothNumber("ANNEX", "99"))
	// Both non-numeric
	assert.True(t, LessBoothNumber("ANNEX-A", "ANNEX-B"))
}
