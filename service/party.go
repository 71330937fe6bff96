package service

import (
	"context"
	"fmt"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type PartyPerformanceResponse struct {
	Party        string                  `json:"party"`
	Constituency store.ConstituencyInfo  `json:"constituency"`
	Booths       []PartyBoothPerformance `json:"booths"`
	Summary      PartyPerformanceSummary `json:"summary"`
}

type PartyBoothPerformance struct {
	BoothID     int     `json:"booth_id"`
	BoothNumber string  `json:"booth_number"`
	BoothName   string  `json:"booth_name"`
	Votes       int     `json:"votes"`
	ValidVotes  int     `json:"valid_votes"`
	VoteShare   float64 `json:"vote_share"`
	Won         bool    `json:"won"`
}

type PartyPerformanceSummary struct {
	TotalVotes      int     `json:"total_votes"`
	OverallShare    float64 `json:"overall_vote_share"`
	BoothsWon       int     `json:"booths_won"`
	BoothsContested int     `json:"booths_contested"`
	BestBoothID     int     `json:"best_booth_id,omitempty"`
}

// PartyPerformance reports one party's booth-by-booth vote share within a
// constituency. The party name match is exact string equality, no fuzzy
// matching.
func (s *BoothAnalytics) PartyPerformance(ctx context.Context, electionID, acID int, partyName string) (*PartyPerformanceResponse, error) {
	if partyName == "" {
		return nil, fmt.Errorf("%w: party name is required", ErrInvalidArgument)
	}

	info, aggs, err := s.constituencyAggregates(ctx, electionID, acID)
	if err != nil {
		return nil, err
	}
	sortByBoothNumber(aggs)

	booths := []PartyBoothPerformance{}
	summary := PartyPerformanceSummary{}
	constituencyValidVotes := 0
	bestShare := -1.0

	for _, agg := range aggs {
		constituencyValidVotes += agg.validVotes

		partyVotes := 0
		contested := false
		for _, r := range agg.results {
			if r.PartyName == partyName {
				partyVotes += r.Votes
				contested = true
			}
		}
		if !contested {
			continue
		}

		share := analytics.VoteSharePercentage(partyVotes, agg.validVotes)
		won := agg.hasWinner && agg.winner.PartyName == partyName
		booths = append(booths, PartyBoothPerformance{
			BoothID:     agg.turnout.BoothID,
			BoothNumber: agg.turnout.BoothNumber,
			BoothName:   agg.turnout.BoothName,
			Votes:       partyVotes,
			ValidVotes:  agg.validVotes,
			VoteShare:   share,
			Won:         won,
		})

		summary.TotalVotes += partyVotes
		summary.BoothsContested++
		if won {
			summary.BoothsWon++
		}
		if share > bestShare {
			bestShare = share
			summary.BestBoothID = agg.turnout.BoothID
		}
	}

	if summary.BoothsContested == 0 {
		return nil, fmt.Errorf("%w: party %q did not contest constituency %d", ErrNotFound, partyName, acID)
	}
	summary.OverallShare = analytics.VoteSharePercentage(summary.TotalVotes, constituencyValidVotes)

	return &PartyPerformanceResponse{
		Party:        partyName,
		Constituency: info,
		Booths:       booths,
		Summary:      summary,
	}, nil
}
