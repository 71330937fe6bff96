package service

import (
	"context"
	"sort"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

type BoothClustersResponse struct {
	Constituency store.ConstituencyInfo `json:"constituency"`
	Clusters     []ClusterGroup         `json:"clusters"`
	TotalBooths  int                    `json:"total_booths"`
}

type ClusterGroup struct {
	Label           string   `json:"label"`
	BoothCount      int      `json:"booth_count"`
	AverageElectors float64  `json:"average_electors"`
	AverageTurnout  float64  `json:"average_turnout"`
	BoothNumbers    []string `json:"booth_numbers"`
}

// clusterOrder fixes the presentation order of the six cluster labels.
var clusterOrder = []string{
	"High_Turnout_Large",
	"High_Turnout_Small",
	"Medium_Turnout_Large",
	"Medium_Turnout_Small",
	"Low_Turnout_Large",
	"Low_Turnout_Small",
}

// BoothClusters groups a constituency's booths by the six-way turnout/size
// classification. Grouping happens in memory after the fetch, not in SQL.
func (s *BoothAnalytics) BoothClusters(ctx context.Context, electionID, acID int) (*BoothClustersResponse, error) {
	info, aggs, err := s.constituencyAggregates(ctx, electionID, acID)
	if err != nil {
		return nil, err
	}
	sortByBoothNumber(aggs)

	type bucket struct {
		count    int
		electors int
		turnout  float64
		numbers  []string
	}
	buckets := map[string]*bucket{}

	for _, agg := range aggs {
		label := analytics.ClusterLabel(agg.turnoutPct, agg.turnout.TotalElectors, s.thresholds)
		b := buckets[label]
		if b == nil {
			b = &bucket{}
			buckets[label] = b
		}
		b.count++
		b.electors += agg.turnout.TotalElectors
		b.turnout += agg.turnoutPct
		b.numbers = append(b.numbers, agg.turnout.BoothNumber)
	}

	clusters := []ClusterGroup{}
	for _, label := range clusterOrder {
		b := buckets[label]
		if b == nil {
			continue
		}
		clusters = append(clusters, ClusterGroup{
			Label:           label,
			BoothCount:      b.count,
			AverageElectors: analytics.Round2(float64(b.electors) / float64(b.count)),
			AverageTurnout:  analytics.Round2(b.turnout / float64(b.count)),
			BoothNumbers:    b.numbers,
		})
	}

	return &BoothClustersResponse{
		Constituency: info,
		Clusters:     clusters,
		TotalBooths:  len(aggs),
	}, nil
}

type RecommendationsResponse struct {
	Constituency store.ConstituencyInfo `json:"constituency"`
	Booths       []BoothRecommendation  `json:"booths"`
	Summary      RecommendationSummary  `json:"summary"`
}

type BoothRecommendation struct {
	BoothID           int     `json:"booth_id"`
	BoothNumber       string  `json:"booth_number"`
	BoothName         string  `json:"booth_name"`
	TotalElectors     int     `json:"total_electors"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
	WinningParty      string  `json:"winning_party,omitempty"`
	WinningShare      float64 `json:"winning_vote_share"`
	Category          string  `json:"category"`
}

type RecommendationSummary struct {
	HighlyCompetitive     int `json:"highly_competitive"`
	LowTurnoutOpportunity int `json:"low_turnout_opportunity"`
	HighDensityStrategic  int `json:"high_density_strategic"`
	Stronghold            int `json:"stronghold"`
	Standard              int `json:"standard"`
}

// categoryPriority orders the recommendation groups: competitive booths
// first, then low-turnout, then high-density, then the rest.
var categoryPriority = map[string]int{
	analytics.CategoryHighlyCompetitive:     0,
	analytics.CategoryLowTurnoutOpportunity: 1,
	analytics.CategoryHighDensityStrategic:  2,
	analytics.CategoryStronghold:            3,
	analytics.CategoryStandard:              4,
}

// Recommendations classifies every booth for campaign targeting and orders
// them by category priority, booth number ascending within each group.
func (s *BoothAnalytics) Recommendations(ctx context.Context, electionID, acID int) (*RecommendationsResponse, error) {
	info, aggs, err := s.constituencyAggregates(ctx, electionID, acID)
	if err != nil {
		return nil, err
	}
	sortByBoothNumber(aggs)

	booths := make([]BoothRecommendation, 0, len(aggs))
	summary := RecommendationSummary{}

	for _, agg := range aggs {
		category := analytics.CompetitivenessCategory(
			agg.winningShare, agg.turnoutPct, agg.turnout.TotalElectors, s.thresholds)

		rec := BoothRecommendation{
			BoothID:           agg.turnout.BoothID,
			BoothNumber:       agg.turnout.BoothNumber,
			BoothName:         agg.turnout.BoothName,
			TotalElectors:     agg.turnout.TotalElectors,
			TurnoutPercentage: agg.turnoutPct,
			WinningShare:      agg.winningShare,
			Category:          category,
		}
		if agg.hasWinner {
			rec.WinningParty = agg.winner.PartyName
		}
		booths = append(booths, rec)

		switch category {
		case analytics.CategoryHighlyCompetitive:
			summary.HighlyCompetitive++
		case analytics.CategoryLowTurnoutOpportunity:
			summary.LowTurnoutOpportunity++
		case analytics.CategoryHighDensityStrategic:
			summary.HighDensityStrategic++
		case analytics.CategoryStronghold:
			summary.Stronghold++
		default:
			summary.Standard++
		}
	}

	// Aggregates arrive sorted by booth number; a stable sort on category
	// priority keeps that order within each group.
	sort.SliceStable(booths, func(i, j int) bool {
		return categoryPriority[booths[i].Category] < categoryPriority[booths[j].Category]
	})

	return &RecommendationsResponse{
		Constituency: info,
		Booths:       booths,
		Summary:      summary,
	}, nil
}

type DemographicsResponse struct {
	Constituency store.ConstituencyInfo `json:"constituency"`
	Booths       []BoothDemographics    `json:"booths"`
	Insight      DemographicInsight     `json:"insight"`
}

type BoothDemographics struct {
	BoothID      int     `json:"booth_id"`
	BoothNumber  string  `json:"booth_number"`
	BoothName    string  `json:"booth_name"`
	MaleVoters   int     `json:"male_voters"`
	FemaleVoters int     `json:"female_voters"`
	OtherVoters  int     `json:"other_voters"`
	TotalVoters  int     `json:"total_voters"`
	MalePct      float64 `json:"male_percentage"`
	FemalePct    float64 `json:"female_percentage"`
	OtherPct     float64 `json:"other_percentage"`
}

type DemographicInsight struct {
	TotalVoters      int     `json:"total_voters"`
	AverageMalePct   float64 `json:"average_male_percentage"`
	AverageFemalePct float64 `json:"average_female_percentage"`
	AverageOtherPct  float64 `json:"average_other_percentage"`
}

// Demographics breaks down each booth's voters by gender with an overall
// average insight across the constituency.
func (s *BoothAnalytics) Demographics(ctx context.Context, electionID, acID int) (*DemographicsResponse, error) {
	op := "demographics"
	info, ok, err := s.ds.ConstituencyByID(ctx, acID)
	if err != nil {
		return nil, translate(op, err)
	}
	if !ok {
		return nil, notFoundConstituency(acID)
	}

	turnout, err := s.ds.TurnoutByConstituency(ctx, acID, electionID)
	if err != nil {
		return nil, translate(op, err)
	}

	booths := make([]BoothDemographics, 0, len(turnout))
	insight := DemographicInsight{}
	maleSum, femaleSum, otherSum := 0.0, 0.0, 0.0

	for _, t := range turnout {
		total := t.MaleVoters + t.FemaleVoters + t.OtherVoters
		malePct, femalePct, otherPct := analytics.DemographicPercentages(
			t.MaleVoters, t.FemaleVoters, t.OtherVoters, total)

		booths = append(booths, BoothDemographics{
			BoothID:      t.BoothID,
			BoothNumber:  t.BoothNumber,
			BoothName:    t.BoothName,
			MaleVoters:   t.MaleVoters,
			FemaleVoters: t.FemaleVoters,
			OtherVoters:  t.OtherVoters,
			TotalVoters:  total,
			MalePct:      malePct,
			FemalePct:    femalePct,
			OtherPct:     otherPct,
		})

		insight.TotalVoters += total
		maleSum += malePct
		femaleSum += femalePct
		otherSum += otherPct
	}

	if len(booths) > 0 {
		n := float64(len(booths))
		insight.AverageMalePct = analytics.Round2(maleSum / n)
		insight.AverageFemalePct = analytics.Round2(femaleSum / n)
		insight.AverageOtherPct = analytics.Round2(otherSum / n)
	}

	return &DemographicsResponse{
		Constituency: info,
		Booths:       booths,
		Insight:      insight,
	}, nil
}

type HeatmapResponse struct {
	Constituency store.ConstituencyInfo `json:"constituency"`
	Metric       string                 `json:"metric"`
	Points       []HeatmapPoint         `json:"points"`
}

type HeatmapPoint struct {
	BoothID     int     `json:"booth_id"`
	BoothNumber string  `json:"booth_number"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Intensity   float64 `json:"intensity"`
	Normalized  int     `json:"normalized_intensity"`
}

// Heatmap metric names.
const (
	MetricTurnout = "turnout"
	MetricVoters  = "voters"
	MetricVotes   = "votes"
)

// Heatmap returns per-booth intensities for the requested metric, linearly
// normalized onto [0,100]. Booth coordinates are placeholders until the
// dataset carries geolocation. Unrecognized metrics fall back to votes cast.
func (s *BoothAnalytics) Heatmap(ctx context.Context, electionID, acID int, metric string) (*HeatmapResponse, error) {
	op := "heatmap"
	info, ok, err := s.ds.ConstituencyByID(ctx, acID)
	if err != nil {
		return nil, translate(op, err)
	}
	if !ok {
		return nil, notFoundConstituency(acID)
	}

	turnout, err := s.ds.TurnoutByConstituency(ctx, acID, electionID)
	if err != nil {
		return nil, translate(op, err)
	}

	if metric != MetricTurnout && metric != MetricVoters {
		metric = MetricVotes
	}

	values := make([]float64, 0, len(turnout))
	for _, t := range turnout {
		switch metric {
		case MetricTurnout:
			values = append(values, analytics.TurnoutPercentage(t.TotalVotesCast, t.TotalElectors))
		case MetricVoters:
			values = append(values, float64(t.TotalElectors))
		default:
			values = append(values, float64(t.TotalVotesCast))
		}
	}
	normalized := analytics.HeatmapNormalize(values)

	points := make([]HeatmapPoint, 0, len(turnout))
	for i, t := range turnout {
		points = append(points, HeatmapPoint{
			BoothID:     t.BoothID,
			BoothNumber: t.BoothNumber,
			Intensity:   values[i],
			Normalized:  normalized[i],
		})
	}

	return &HeatmapResponse{
		Constituency: info,
		Metric:       metric,
		Points:       points,
	}, nil
}
