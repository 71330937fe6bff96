package analytics

import (
	"strconv"
	"strings"
)

// Cluster and competitiveness labels returned by the classifiers below.
const (
	CategoryHighlyCompetitive     = "HighlyCompetitive"
	CategoryLowTurnoutOpportunity = "LowTurnoutOpportunity"
	CategoryHighDensityStrategic  = "HighDensityStrategic"
	CategoryStronghold            = "Stronghold"
	CategoryStandard              = "Standard"
)

// Thresholds holds the classification cut-offs. They are fixed for the
// production dataset but injectable so the rules can be exercised in tests.
type Thresholds struct {
	HighTurnout         float64
	MediumTurnout       float64
	LargeBooth          int
	CompetitiveWinPct   float64
	LowTurnoutPct       float64
	HighDensityElectors int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		HighTurnout:         70,
		MediumTurnout:       50,
		LargeBooth:          800,
		CompetitiveWinPct:   55,
		LowTurnoutPct:       50,
		HighDensityElectors: 1000,
	}
}

// ClusterLabel classifies a booth into one of six clusters by crossing the
// turnout band (>=70 high, >=50 medium, else low) with the size band
// (>800 electors large, else small).
func ClusterLabel(turnoutPct float64, electors int, t Thresholds) string {
	var turnout string
	switch {
	case turnoutPct >= t.HighTurnout:
		turnout = "High"
	case turnoutPct >= t.MediumTurnout:
		turnout = "Medium"
	default:
		turnout = "Low"
	}

	size := "Small"
	if electors > t.LargeBooth {
		size = "Large"
	}

	return turnout + "_Turnout_" + size
}

// CompetitivenessCategory classifies a booth for campaign targeting. The
// rules are priority-ordered and the first match wins: a competitive booth
// stays competitive even when its turnout or size would also match a later
// rule.
func CompetitivenessCategory(winningPct, turnoutPct float64, electors int, t Thresholds) string {
	switch {
	case winningPct < t.CompetitiveWinPct:
		return CategoryHighlyCompetitive
	case turnoutPct < t.LowTurnoutPct:
		return CategoryLowTurnoutOpportunity
	case electors > t.HighDensityElectors:
		return CategoryHighDensityStrategic
	case winningPct >= t.CompetitiveWinPct:
		return CategoryStronghold
	default:
		return CategoryStandard
	}
}

// ConstituencyCategory derives the reservation category from the seat name:
// "(SC)" and "(ST)" suffixes mark reserved seats, everything else is general.
func ConstituencyCategory(acName string) string {
	upper := strings.ToUpper(acName)
	switch {
	case strings.Contains(upper, "(SC)"):
		return "SC"
	case strings.Contains(upper, "(ST)"):
		return "ST"
	default:
		return "GEN"
	}
}

// BoothNumberKey parses a booth number stored as text into its numeric sort
// key. Booth numbers like "12A" sort by their leading digits; fully
// non-numeric values report false and fall back to lexicographic order.
func BoothNumberKey(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// LessBoothNumber orders text booth numbers numerically where possible,
// lexicographically otherwise.
func LessBoothNumber(a, b string) bool {
	ka, oka := BoothNumberKey(a)
	kb, okb := BoothNumberKey(b)
	switch {
	case oka && okb:
		if ka != kb {
			return ka < kb
		}
		return a < b
	case oka:
		return true
	case okb:
		return false
	default:
		return a < b
	}
}
