package service

import (
	"context"
	"fmt"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type BoothDetailsResponse struct {
	Booth      store.BoothInfo        `json:"booth"`
	Results    []RankedResult         `json:"results"`
	Comparison ConstituencyComparison `json:"constituency_comparison"`
	Summary    BoothSummary           `json:"summary"`
}

type RankedResult struct {
	Rank           int     `json:"rank"`
	CandidateID    int     `json:"candidate_id"`
	CandidateName  string  `json:"candidate_name"`
	PartyName      string  `json:"party_name"`
	PartySymbol    string  `json:"party_symbol,omitempty"`
	Votes          int     `json:"votes"`
	VotePercentage float64 `json:"vote_percentage"`
}

type ConstituencyComparison struct {
	ConstituencyTurnout float64 `json:"constituency_turnout_percentage"`
	BoothTurnout        float64 `json:"booth_turnout_percentage"`
	Difference          float64 `json:"difference"`
	TurnoutRank         int     `json:"turnout_rank"`
	TotalBooths         int     `json:"total_booths"`
}

type BoothSummary struct {
	TotalElectors        int     `json:"total_electors"`
	TotalVotesCast       int     `json:"total_votes_cast"`
	TurnoutPercentage    float64 `json:"turnout_percentage"`
	WinningCandidate     string  `json:"winning_candidate,omitempty"`
	WinningParty         string  `json:"winning_party,omitempty"`
	VictoryMargin        int     `json:"victory_margin"`
	ContestingCandidates int     `json:"contesting_candidates"`
}

// BoothDetails assembles the booth composite: identity, ranked results,
// comparison against the rest of the constituency and a summary block.
func (s *BoothAnalytics) BoothDetails(ctx context.Context, electionID, boothID int) (*BoothDetailsResponse, error) {
	op := fmt.Sprintf("booth details booth=%d election=%d", boothID, electionID)

	booth, ok, err := s.ds.BoothByID(ctx, boothID)
	if err != nil {
		return nil, translate(op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: booth %d", ErrNotFound, boothID)
	}

	turnout, _, err := s.ds.TurnoutByBooth(ctx, boothID, electionID)
	if err != nil {
		return nil, translate(op, err)
	}

	results, err := s.ds.ResultsByBooth(ctx, boothID, electionID)
	if err != nil {
		return nil, translate(op, err)
	}

	validVotes := 0
	for _, r := range results {
		validVotes += r.Votes
	}

	ranked := make([]RankedResult, 0, len(results))
	entries := make([]analytics.ResultEntry, 0, len(results))
	for i, r := range results {
		ranked = append(ranked, RankedResult{
			Rank:           i + 1,
			CandidateID:    r.CandidateID,
			CandidateName:  r.CandidateName,
			PartyName:      r.PartyName,
			PartySymbol:    r.PartySymbol,
			Votes:          r.Votes,
			VotePercentage: analytics.VoteSharePercentage(r.Votes, validVotes),
		})
		entries = append(entries, analytics.ResultEntry{CandidateID: r.CandidateID, Votes: r.Votes})
	}

	boothPct := analytics.TurnoutPercentage(turnout.TotalVotesCast, turnout.TotalElectors)

	// Constituency comparison: aggregate turnout across every booth plus
	// this booth's rank by turnout percentage.
	siblings, err := s.ds.TurnoutByConstituency(ctx, booth.ACID, electionID)
	if err != nil {
		return nil, translate(op, err)
	}

	totalElectors, totalCast, rank := 0, 0, 1
	for _, row := range siblings {
		totalElectors += row.TotalElectors
		totalCast += row.TotalVotesCast
		if row.BoothID != boothID &&
			analytics.TurnoutPercentage(row.TotalVotesCast, row.TotalElectors) > boothPct {
			rank++
		}
	}
	constituencyPct := analytics.TurnoutPercentage(totalCast, totalElectors)

	summary := BoothSummary{
		TotalElectors:        turnout.TotalElectors,
		TotalVotesCast:       turnout.TotalVotesCast,
		TurnoutPercentage:    boothPct,
		VictoryMargin:        analytics.VictoryMargin(entries),
		ContestingCandidates: len(results),
	}
	if winner, ok := analytics.WinningEntry(entries); ok {
		for _, r := range results {
			if r.CandidateID == winner.CandidateID {
				summary.WinningCandidate = r.CandidateName
				summary.WinningParty = r.PartyName
				break
			}
		}
	}

	return &BoothDetailsResponse{
		Booth:   booth,
		Results: ranked,
		Comparison: ConstituencyComparison{
			ConstituencyTurnout: constituencyPct,
			BoothTurnout:        boothPct,
			Difference:          analytics.Round2(boothPct - constituencyPct),
			TurnoutRank:         rank,
			TotalBooths:         len(siblings),
		},
		Summary: summary,
	}, nil
}

type CompareBoothsResponse struct {
	Booths  []BoothComparison `json:"booths"`
	Summary CompareSummary    `json:"summary"`
}

type BoothComparison struct {
	BoothID           int     `json:"booth_id"`
	BoothNumber       string  `json:"booth_number"`
	BoothName         string  `json:"booth_name"`
	ACName            string  `json:"ac_name"`
	TotalElectors     int     `json:"total_electors"`
	TotalVotesCast    int     `json:"total_votes_cast"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
	WinningParty      string  `json:"winning_party,omitempty"`
	VictoryMargin     int     `json:"victory_margin"`
}

type CompareSummary struct {
	BoothCount        int     `json:"booth_count"`
	TotalElectors     int     `json:"total_electors"`
	TotalVotesCast    int     `json:"total_votes_cast"`
	AverageTurnout    float64 `json:"average_turnout"`
	BestTurnoutBooth  int     `json:"best_turnout_booth_id"`
	WorstTurnoutBooth int     `json:"worst_turnout_booth_id"`
}

// CompareBooths builds side-by-side metrics for an arbitrary set of booths.
// An empty id list is an InvalidArgument; ids that match no booth are
// skipped, and a set that matches nothing at all is NotFound.
func (s *BoothAnalytics) CompareBooths(ctx context.Context, electionID int, boothIDs []int) (*CompareBoothsResponse, error) {
	if len(boothIDs) == 0 {
		return nil, fmt.Errorf("%w: boothIds must be a non-empty array", ErrInvalidArgument)
	}
	op := fmt.Sprintf("compare booths election=%d", electionID)

	comparisons := []BoothComparison{}
	summary := CompareSummary{}
	turnoutSum := 0.0
	bestPct, worstPct := -1.0, -1.0

	for _, id := range boothIDs {
		booth, ok, err := s.ds.BoothByID(ctx, id)
		if err != nil {
			return nil, translate(op, err)
		}
		if !ok {
			continue
		}

		turnout, _, err := s.ds.TurnoutByBooth(ctx, id, electionID)
		if err != nil {
			return nil, translate(op, err)
		}
		results, err := s.ds.ResultsByBooth(ctx, id, electionID)
		if err != nil {
			return nil, translate(op, err)
		}

		entries := make([]analytics.ResultEntry, 0, len(results))
		for _, r := range results {
			entries = append(entries, analytics.ResultEntry{CandidateID: r.CandidateID, Votes: r.Votes})
		}

		pct := analytics.TurnoutPercentage(turnout.TotalVotesCast, turnout.TotalElectors)
		c := BoothComparison{
			BoothID:           booth.BoothID,
			BoothNumber:       booth.BoothNumber,
			BoothName:         booth.BoothName,
			ACName:            booth.ACName,
			TotalElectors:     turnout.TotalElectors,
			TotalVotesCast:    turnout.TotalVotesCast,
			TurnoutPercentage: pct,
			VictoryMargin:     analytics.VictoryMargin(entries),
		}
		if winner, ok := analytics.WinningEntry(entries); ok {
			for _, r := range results {
				if r.CandidateID == winner.CandidateID {
					c.WinningParty = r.PartyName
					break
				}
			}
		}
		comparisons = append(comparisons, c)

		summary.TotalElectors += turnout.TotalElectors
		summary.TotalVotesCast += turnout.TotalVotesCast
		turnoutSum += pct
		if bestPct < 0 || pct > bestPct {
			bestPct = pct
			summary.BestTurnoutBooth = booth.BoothID
		}
		if worstPct < 0 || pct < worstPct {
			worstPct = pct
			summary.WorstTurnoutBooth = booth.BoothID
		}
	}

	if len(comparisons) == 0 {
		return nil, fmt.Errorf("%w: none of the requested booths exist", ErrNotFound)
	}

	summary.BoothCount = len(comparisons)
	summary.AverageTurnout = analytics.Round2(turnoutSum / float64(len(comparisons)))

	return &CompareBoothsResponse{Booths: comparisons, Summary: summary}, nil
}
