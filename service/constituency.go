package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type ConstituencyAnalysisResponse struct {
	Constituency   store.ConstituencyInfo `json:"constituency"`
	Booths         []BoothMetrics         `json:"booths"`
	PartyDominance []PartyDominance       `json:"party_dominance"`
	Summary        ConstituencySummary    `json:"summary"`
	Insights       AnalysisInsights       `json:"insights"`
}

type BoothMetrics struct {
	BoothID           int     `json:"booth_id"`
	BoothNumber       string  `json:"booth_number"`
	BoothName         string  `json:"booth_name"`
	TotalElectors     int     `json:"total_electors"`
	TotalVotesCast    int     `json:"total_votes_cast"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
	WinningCandidate  string  `json:"winning_candidate,omitempty"`
	WinningParty      string  `json:"winning_party,omitempty"`
	WinningVotes      int     `json:"winning_votes"`
	VictoryMargin     int     `json:"victory_margin"`
}

type PartyDominance struct {
	PartyName  string  `json:"party_name"`
	BoothsWon  int     `json:"booths_won"`
	TotalVotes int     `json:"total_votes"`
	VoteShare  float64 `json:"vote_share"`
}

type ConstituencySummary struct {
	TotalBooths       int     `json:"total_booths"`
	TotalElectors     int     `json:"total_electors"`
	TotalVotesCast    int     `json:"total_votes_cast"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
	AverageTurnout    float64 `json:"average_booth_turnout"`
}

type AnalysisInsights struct {
	HighTurnoutBooths int    `json:"high_turnout_booths"`
	LowTurnoutBooths  int    `json:"low_turnout_booths"`
	LargeBooths       int    `json:"large_booths"`
	LeadingParty      string `json:"leading_party,omitempty"`
}

// ConstituencyBoothAnalysis is the full analysis composite: per-booth
// metrics, party dominance counts, aggregate summary and insight counters.
func (s *BoothAnalytics) ConstituencyBoothAnalysis(ctx context.Context, electionID, acID int) (*ConstituencyAnalysisResponse, error) {
	info, aggs, err := s.constituencyAggregates(ctx, electionID, acID)
	if err != nil {
		return nil, err
	}
	sortByBoothNumber(aggs)

	op := fmt.Sprintf("constituency analysis ac=%d election=%d", acID, electionID)
	sqlSummary, _, err := s.ds.ConstituencySummary(ctx, acID, electionID)
	if err != nil {
		return nil, translate(op, err)
	}

	booths := make([]BoothMetrics, 0, len(aggs))
	dominance := map[string]*partyTally{}
	insights := AnalysisInsights{}
	turnoutSum := 0.0
	totalValidVotes := 0

	for _, agg := range aggs {
		m := BoothMetrics{
			BoothID:           agg.turnout.BoothID,
			BoothNumber:       agg.turnout.BoothNumber,
			BoothName:         agg.turnout.BoothName,
			TotalElectors:     agg.turnout.TotalElectors,
			TotalVotesCast:    agg.turnout.TotalVotesCast,
			TurnoutPercentage: agg.turnoutPct,
			VictoryMargin:     agg.margin,
		}
		if agg.hasWinner {
			m.WinningCandidate = agg.winner.CandidateName
			m.WinningParty = agg.winner.PartyName
			m.WinningVotes = agg.winner.Votes
		}
		booths = append(booths, m)

		for _, r := range agg.results {
			tally := dominance[r.PartyName]
			if tally == nil {
				tally = &partyTally{party: r.PartyName}
				dominance[r.PartyName] = tally
			}
			tally.votes += r.Votes
			totalValidVotes += r.Votes
		}
		if agg.hasWinner {
			dominance[agg.winner.PartyName].boothsWon++
		}

		turnoutSum += agg.turnoutPct
		if agg.turnoutPct >= s.thresholds.HighTurnout {
			insights.HighTurnoutBooths++
		}
		if agg.turnoutPct < s.thresholds.MediumTurnout {
			insights.LowTurnoutBooths++
		}
		if agg.turnout.TotalElectors > s.thresholds.LargeBooth {
			insights.LargeBooths++
		}
	}

	parties := rankPartyTallies(dominance, totalValidVotes)
	if len(parties) > 0 {
		insights.LeadingParty = parties[0].PartyName
	}

	summary := ConstituencySummary{
		TotalBooths:       sqlSummary.TotalBooths,
		TotalElectors:     sqlSummary.TotalElectors,
		TotalVotesCast:    sqlSummary.TotalVotesCast,
		TurnoutPercentage: analytics.TurnoutPercentage(sqlSummary.TotalVotesCast, sqlSummary.TotalElectors),
	}
	if len(aggs) > 0 {
		summary.AverageTurnout = analytics.Round2(turnoutSum / float64(len(aggs)))
	}

	return &ConstituencyAnalysisResponse{
		Constituency:   info,
		Booths:         booths,
		PartyDominance: parties,
		Summary:        summary,
		Insights:       insights,
	}, nil
}

type partyTally struct {
	party     string
	boothsWon int
	votes     int
}

func rankPartyTallies(dominance map[string]*partyTally, totalValidVotes int) []PartyDominance {
	ranked := make([]PartyDominance, 0, len(dominance))
	for _, t := range dominance {
		ranked = append(ranked, PartyDominance{
			PartyName:  t.party,
			BoothsWon:  t.boothsWon,
			TotalVotes: t.votes,
			VoteShare:  analytics.VoteSharePercentage(t.votes, totalValidVotes),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].BoothsWon != ranked[j].BoothsWon {
			return ranked[i].BoothsWon > ranked[j].BoothsWon
		}
		if ranked[i].TotalVotes != ranked[j].TotalVotes {
			return ranked[i].TotalVotes > ranked[j].TotalVotes
		}
		return ranked[i].PartyName < ranked[j].PartyName
	})
	return ranked
}
