// Package analytics contains the pure aggregation formulas used by the booth
// analysis endpoints. Everything here operates on in-memory rows already
// fetched by the store, so the rules stay testable without a database.
package analytics

import "math"

// ResultEntry is one candidate's tally within a single booth.
type ResultEntry struct {
	CandidateID int
	Votes       int
}

// Round2 rounds to two decimal places, the precision used by every
// percentage field in the API.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TurnoutPercentage returns votes cast as a percentage of electors. Zero
// electors is a defined zero result, never a division fault.
func TurnoutPercentage(votesCast, electors int) float64 {
	if electors <= 0 {
		return 0
	}
	return Round2(float64(votesCast) * 100 / float64(electors))
}

// VoteSharePercentage returns a candidate's share of the total valid votes.
func VoteSharePercentage(candidateVotes, totalVotes int) float64 {
	if totalVotes <= 0 {
		return 0
	}
	return Round2(float64(candidateVotes) * 100 / float64(totalVotes))
}

// WinningEntry returns the entry with the maximum votes. Ties break to the
// lowest candidate_id so repeated calls over the same rows are deterministic
// regardless of arrival order. The second return is false for empty input.
func WinningEntry(results []ResultEntry) (ResultEntry, bool) {
	if len(results) == 0 {
		return ResultEntry{}, false
	}
	winner := results[0]
	for _, r := range results[1:] {
		if r.Votes > winner.Votes || (r.Votes == winner.Votes && r.CandidateID < winner.CandidateID) {
			winner = r
		}
	}
	return winner, true
}

// VictoryMargin returns winner votes minus runner-up votes, 0 when fewer
// than two candidates contested.
func VictoryMargin(results []ResultEntry) int {
	if len(results) < 2 {
		return 0
	}
	top, second := 0, 0
	first := true
	for _, r := range results {
		switch {
		case first:
			top = r.Votes
			first = false
		case r.Votes > top:
			second = top
			top = r.Votes
		case r.Votes > second:
			second = r.Votes
		}
	}
	return top - second
}

// DemographicPercentages returns each gender group's share of total voters,
// zero-guarded and rounded to two decimals.
func DemographicPercentages(male, female, other, total int) (malePct, femalePct, otherPct float64) {
	if total <= 0 {
		return 0, 0, 0
	}
	t := float64(total)
	return Round2(float64(male) * 100 / t),
		Round2(float64(female) * 100 / t),
		Round2(float64(other) * 100 / t)
}

// HeatmapNormalize rescales values linearly onto [0,100], rounded to the
// nearest integer. A degenerate range (max == min) maps every value to 50.
func HeatmapNormalize(values []float64) []int {
	if len(values) == 0 {
		return []int{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	normalized := make([]int, len(values))
	if max == min {
		for i := range normalized {
			normalized[i] = 50
		}
		return normalized
	}
	for i, v := range values {
		normalized[i] = int(math.Round((v - min) / (max - min) * 100))
	}
	return normalized
}
