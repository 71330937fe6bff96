package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekt74-lang/chunavmantra-backend/models"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

// stubStore is an in-memory Datastore for exercising the service without a
// database.
type stubStore struct {
	booths         map[int]store.BoothInfo
	constituencies map[int]store.ConstituencyInfo
	turnout        map[int]models.BoothTurnout
	results        map[int][]store.ResultRow
	acTurnout      map[int][]store.BoothTurnoutRow
	acResults      map[int][]store.ConstituencyResultRow
	summaries      map[int]store.SummaryRow
	err            error
}

func (s *stubStore) BoothByID(ctx context.Context, boothID int) (store.BoothInfo, bool, error) {
	if s.err != nil {
		return store.BoothInfo{}, false, s.err
	}
	b, ok := s.booths[boothID]
	return b, ok, nil
}

func (s *stubStore) ConstituencyByID(ctx context.Context, acID int) (store.ConstituencyInfo, bool, error) {
	if s.err != nil {
		return store.ConstituencyInfo{}, false, s.err
	}
	c, ok := s.constituencies[acID]
	return c, ok, nil
}

func (s *stubStore) TurnoutByBooth(ctx context.Context, boothID, electionID int) (models.BoothTurnout, bool, error) {
	if s.err != nil {
		return models.BoothTurnout{}, false, s.err
	}
	t, ok := s.turnout[boothID]
	return t, ok, nil
}

func (s *stubStore) ResultsByBooth(ctx context.Context, boothID, electionID int) ([]store.ResultRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.results[boothID], nil
}

func (s *stubStore) TurnoutByConstituency(ctx context.Context, acID, electionID int) ([]store.BoothTurnoutRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.acTurnout[acID], nil
}

func (s *stubStore) ResultRowsByConstituency(ctx context.Context, acID, electionID int) ([]store.ConstituencyResultRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.acResults[acID], nil
}

func (s *stubStore) ConstituencySummary(ctx context.Context, acID, electionID int) (store.SummaryRow, bool, error) {
	if s.err != nil {
		return store.SummaryRow{}, false, s.err
	}
	sum, ok := s.summaries[acID]
	return sum, ok, nil
}

const (
	testElection = 1
	testAC       = 10
)

// fixtureStore builds a three-booth constituency:
//
//	booth 1: 1000 electors, 650 cast (65.00%), Lotus 400 / Hand 250
//	booth 2:  800 electors, 600 cast (75.00%), Lotus 280 / Hand 300
//	booth 3: 1200 electors, 480 cast (40.00%), Lotus 250 / Hand 200
func fixtureStore() *stubStore {
	ac := store.ConstituencyInfo{
		ACID: testAC, ACName: "Hastinapur (SC)", ACNumber: 42,
		DistrictID: 3, DistrictName: "Meerut", StateName: "Uttar Pradesh",
	}

	return &stubStore{
		booths: map[int]store.BoothInfo{
			1: {BoothID: 1, BoothNumber: "1", BoothName: "Govt Primary School", ACID: testAC, ACName: ac.ACName, ACNumber: 42, DistrictName: "Meerut"},
			2: {BoothID: 2, BoothNumber: "2", BoothName: "Panchayat Bhawan", ACID: testAC, ACName: ac.ACName, ACNumber: 42, DistrictName: "Meerut"},
			3: {BoothID: 3, BoothNumber: "3", BoothName: "Inter College", ACID: testAC, ACName: ac.ACName, ACNumber: 42, DistrictName: "Meerut"},
		},
		constituencies: map[int]store.ConstituencyInfo{testAC: ac},
		turnout: map[int]models.BoothTurnout{
			1: {BoothID: 1, ElectionID: testElection, TotalElectors: 1000, MaleVoters: 330, FemaleVoters: 310, OtherVoters: 10, TotalVotesCast: 650},
			2: {BoothID: 2, ElectionID: testElection, TotalElectors: 800, MaleVoters: 300, FemaleVoters: 290, OtherVoters: 10, TotalVotesCast: 600},
			3: {BoothID: 3, ElectionID: testElection, TotalElectors: 1200, MaleVoters: 240, FemaleVoters: 230, OtherVoters: 10, TotalVotesCast: 480},
		},
		results: map[int][]store.ResultRow{
			1: {
				{CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 400},
				{CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 250},
			},
			2: {
				{CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 300},
				{CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 280},
			},
			3: {
				{CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 250},
				{CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 200},
			},
		},
		acTurnout: map[int][]store.BoothTurnoutRow{
			testAC: {
				{BoothID: 1, BoothNumber: "1", BoothName: "Govt Primary School", TotalElectors: 1000, MaleVoters: 330, FemaleVoters: 310, OtherVoters: 10, TotalVotesCast: 650},
				{BoothID: 2, BoothNumber: "2", BoothName: "Panchayat Bhawan", TotalElectors: 800, MaleVoters: 300, FemaleVoters: 290, OtherVoters: 10, TotalVotesCast: 600},
				{BoothID: 3, BoothNumber: "3", BoothName: "Inter College", TotalElectors: 1200, MaleVoters: 240, FemaleVoters: 230, OtherVoters: 10, TotalVotesCast: 480},
			},
		},
		acResults: map[int][]store.ConstituencyResultRow{
			testAC: {
				{BoothID: 1, CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 400},
				{BoothID: 1, CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 250},
				{BoothID: 2, CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 300},
				{BoothID: 2, CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 280},
				{BoothID: 3, CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 250},
				{BoothID: 3, CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 200},
			},
		},
		summaries: map[int]store.SummaryRow{
			testAC: {TotalBooths: 3, TotalElectors: 3000, TotalVotesCast: 1730},
		},
	}
}

func TestBoothDetails(t *testing.T) {
	svc := New(fixtureStore())

	details, err := svc.BoothDetails(context.Background(), testElection, 1)
	require.NoError(t, err)

	assert.Equal(t, "Govt Primary School", details.Booth.BoothName)
	assert.Equal(t, 65.00, details.Summary.TurnoutPercentage)
	assert.Equal(t, 1000, details.Summary.TotalElectors)
	assert.Equal(t, 650, details.Summary.TotalVotesCast)
	assert.Equal(t, "Arjun Singh", details.Summary.WinningCandidate)
	assert.Equal(t, "Lotus Party", details.Summary.WinningParty)
	assert.Equal(t, 150, details.Summary.VictoryMargin)
	assert.Equal(t, 2, details.Summary.ContestingCandidates)

	require.Len(t, details.Results, 2)
	assert.Equal(t, 1, details.Results[0].Rank)
	assert.Equal(t, 61.54, details.Results[0].VotePercentage)
	assert.Equal(t, 38.46, details.Results[1].VotePercentage)

	// 1730 of 3000 electors across the constituency
	assert.Equal(t, 57.67, details.Comparison.ConstituencyTurnout)
	assert.Equal(t, 65.00, details.Comparison.BoothTurnout)
	assert.Equal(t, 7.33, details.Comparison.Difference)
	assert.Equal(t, 2, details.Comparison.TurnoutRank) // booth 2 turned out higher
	assert.Equal(t, 3, details.Comparison.TotalBooths)
}

func TestBoothDetailsNotFound(t *testing.T) {
	svc := New(fixtureStore())

	_, err := svc.BoothDetails(context.Background(), testElection, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoothDetailsStoreFailure(t *testing.T) {
	svc := New(&stubStore{err: fmt.Errorf("%w: connection refused", store.ErrUnavailable)})

	_, err := svc.BoothDetails(context.Background(), testElection, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestConstituencyBoothAnalysis(t *testing.T) {
	svc := New(fixtureStore())

	analysis, err := svc.ConstituencyBoothAnalysis(context.Background(), testElection, testAC)
	require.NoError(t, err)

	require.Len(t, analysis.Booths, 3)
	assert.Equal(t, "Lotus Party", analysis.Booths[0].WinningParty)
	assert.Equal(t, "Hand Party", analysis.Booths[1].WinningParty)
	assert.Equal(t, 20, analysis.Booths[1].VictoryMargin)

	// Per-booth totals must agree with the SQL-side summary
	electors, cast := 0, 0
	for _, b := range analysis.Booths {
		electors += b.TotalElectors
		cast += b.TotalVotesCast
	}
	assert.Equal(t, analysis.Summary.TotalElectors, electors)
	assert.Equal(t, analysis.Summary.TotalVotesCast, cast)
	assert.Equal(t, 3, analysis.Summary.TotalBooths)
	assert.Equal(t, 57.67, analysis.Summary.TurnoutPercentage)
	assert.Equal(t, 60.0, analysis.Summary.AverageTurnout) // (65+75+40)/3

	require.Len(t, analysis.PartyDominance, 2)
	assert.Equal(t, "Lotus Party", analysis.PartyDominance[0].PartyName)
	assert.Equal(t, 2, analysis.PartyDominance[0].BoothsWon)
	assert.Equal(t, 930, analysis.PartyDominance[0].TotalVotes)
	assert.Equal(t, 55.36, analysis.PartyDominance[0].VoteShare)
	assert.Equal(t, 1, analysis.PartyDominance[1].BoothsWon)

	assert.Equal(t, 1, analysis.Insights.HighTurnoutBooths) // booth 2 at 75%
	assert.Equal(t, 1, analysis.Insights.LowTurnoutBooths)  // booth 3 at 40%
	assert.Equal(t, 2, analysis.Insights.LargeBooths)       // booths 1 and 3
	assert.Equal(t, "Lotus Party", analysis.Insights.LeadingParty)
}

func TestConstituencyBoothAnalysisNotFound(t *testing.T) {
	svc := New(fixtureStore())

	_, err := svc.ConstituencyBoothAnalysis(context.Background(), testElection, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPartyPerformance(t *testing.T) {
	svc := New(fixtureStore())

	perf, err := svc.PartyPerformance(context.Background(), testElection, testAC, "Lotus Party")
	require.NoError(t, err)

	require.Len(t, perf.Booths, 3)
	assert.Equal(t, 61.54, perf.Booths[0].VoteShare)
	assert.True(t, perf.Booths[0].Won)
	assert.Equal(t, 48.28, perf.Booths[1].VoteShare)
	assert.False(t, perf.Booths[1].Won)
	assert.True(t, perf.Booths[2].Won)

	assert.Equal(t, 930, perf.Summary.TotalVotes)
	assert.Equal(t, 55.36, perf.Summary.OverallShare)
	assert.Equal(t, 2, perf.Summary.BoothsWon)
	assert.Equal(t, 3, perf.Summary.BoothsContested)
	assert.Equal(t, 1, perf.Summary.BestBoothID)
}

func TestPartyPerformanceExactMatchOnly(t *testing.T) {
	svc := New(fixtureStore())

	// Case and partial matches do not count
	_, err := svc.PartyPerformance(context.Background(), testElection, testAC, "lotus party")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PartyPerformance(context.Background(), testElection, testAC, "Lotus")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PartyPerformance(context.Background(), testElection, testAC, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBoothClusters(t *testing.T) {
	svc := New(fixtureStore())

	clusters, err := svc.BoothClusters(context.Background(), testElection, testAC)
	require.NoError(t, err)

	assert.Equal(t, 3, clusters.TotalBooths)
	require.Len(t, clusters.Clusters, 3)

	// Fixed label order: High before Medium before Low
	assert.Equal(t, "High_Turnout_Small", clusters.Clusters[0].Label)
	assert.Equal(t, []string{"2"}, clusters.Clusters[0].BoothNumbers)
	assert.Equal(t, 800.0, clusters.Clusters[0].AverageElectors)
	assert.Equal(t, 75.0, clusters.Clusters[0].AverageTurnout)

	assert.Equal(t, "Medium_Turnout_Large", clusters.Clusters[1].Label)
	assert.Equal(t, "Low_Turnout_Large", clusters.Clusters[2].Label)
}

func TestCompareBooths(t *testing.T) {
	svc := New(fixtureStore())

	comparison, err := svc.CompareBooths(context.Background(), testElection, []int{1, 3, 999})
	require.NoError(t, err)

	// Unknown ids are skipped
	require.Len(t, comparison.Booths, 2)
	assert.Equal(t, 2, comparison.Summary.BoothCount)
	assert.Equal(t, 2200, comparison.Summary.TotalElectors)
	assert.Equal(t, 1130, comparison.Summary.TotalVotesCast)
	assert.Equal(t, 52.5, comparison.Summary.AverageTurnout)
	assert.Equal(t, 1, comparison.Summary.BestTurnoutBooth)
	assert.Equal(t, 3, comparison.Summary.WorstTurnoutBooth)
}

func TestCompareBoothsEmptyInput(t *testing.T) {
	svc := New(fixtureStore())

	_, err := svc.CompareBooths(context.Background(), testElection, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CompareBooths(context.Background(), testElection, []int{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompareBoothsAllUnknown(t *testing.T) {
	svc := New(fixtureStore())

	_, err := svc.CompareBooths(context.Background(), testElection, []int{998, 999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendations(t *testing.T) {
	svc := New(fixtureStore())

	recs, err := svc.Recommendations(context.Background(), testElection, testAC)
	require.NoError(t, err)

	require.Len(t, recs.Booths, 3)
	// booth 2: winner at 51.72% -> HighlyCompetitive
	// booth 3: winner at 55.56% but 40% turnout -> LowTurnoutOpportunity
	// booth 1: winner at 61.54%, 65% turnout, 1000 electors -> Stronghold
	assert.Equal(t, 2, recs.Booths[0].BoothID)
	assert.Equal(t, "HighlyCompetitive", recs.Booths[0].Category)
	assert.Equal(t, 3, recs.Booths[1].BoothID)
	assert.Equal(t, "LowTurnoutOpportunity", recs.Booths[1].Category)
	assert.Equal(t, 1, recs.Booths[2].BoothID)
	assert.Equal(t, "Stronghold", recs.Booths[2].Category)

	assert.Equal(t, 1, recs.Summary.HighlyCompetitive)
	assert.Equal(t, 1, recs.Summary.LowTurnoutOpportunity)
	assert.Equal(t, 0, recs.Summary.HighDensityStrategic)
	assert.Equal(t, 1, recs.Summary.Stronghold)
	assert.Equal(t, 0, recs.Summary.Standard)
}

func TestDemographics(t *testing.T) {
	svc := New(fixtureStore())

	demo, err := svc.Demographics(context.Background(), testElection, testAC)
	require.NoError(t, err)

	require.Len(t, demo.Booths, 3)
	assert.Equal(t, 650, demo.Booths[0].TotalVoters)
	assert.Equal(t, 50.77, demo.Booths[0].MalePct)
	assert.Equal(t, 47.69, demo.Booths[0].FemalePct)
	assert.Equal(t, 1.54, demo.Booths[0].OtherPct)

	assert.Equal(t, 1730, demo.Insight.TotalVoters)
	assert.Equal(t, 50.26, demo.Insight.AverageMalePct)
	assert.Equal(t, 47.98, demo.Insight.AverageFemalePct)
	assert.Equal(t, 1.76, demo.Insight.AverageOtherPct)
}

func TestHeatmap(t *testing.T) {
	svc := New(fixtureStore())

	t.Run("turnout metric", func(t *testing.T) {
		heatmap, err := svc.Heatmap(context.Background(), testElection, testAC, "turnout")
		require.NoError(t, err)

		assert.Equal(t, "turnout", heatmap.Metric)
		require.Len(t, heatmap.Points, 3)
		// 65/75/40 rescaled onto [0,100]
		assert.Equal(t, 71, heatmap.Points[0].Normalized)
		assert.Equal(t, 100, heatmap.Points[1].Normalized)
		assert.Equal(t, 0, heatmap.Points[2].Normalized)
	})

	t.Run("voters metric", func(t *testing.T) {
		heatmap, err := svc.Heatmap(context.Background(), testElection, testAC, "voters")
		require.NoError(t, err)

		assert.Equal(t, "voters", heatmap.Metric)
		assert.Equal(t, float64(1000), heatmap.Points[0].Intensity)
		assert.Equal(t, 50, heatmap.Points[0].Normalized)
		assert.Equal(t, 0, heatmap.Points[1].Normalized)
		assert.Equal(t, 100, heatmap.Points[2].Normalized)
	})

	t.Run("unknown metric falls back to votes", func(t *testing.T) {
		heatmap, err := svc.Heatmap(context.Background(), testElection, testAC, "bogus")
		require.NoError(t, err)

		assert.Equal(t, "votes", heatmap.Metric)
		assert.Equal(t, float64(650), heatmap.Points[0].Intensity)
	})
}

func TestWinnerTieBreakIsDeterministic(t *testing.T) {
	st := fixtureStore()
	// Equal votes in booth 1: candidate 1 must win on lower id
	st.results[1] = []store.ResultRow{
		{CandidateID: 1, CandidateName: "Arjun Singh", PartyName: "Lotus Party", Votes: 300},
		{CandidateID: 2, CandidateName: "Bhim Rao", PartyName: "Hand Party", Votes: 300},
	}
	svc := New(st)

	for i := 0; i < 3; i++ {
		details, err := svc.BoothDetails(context.Background(), testElection, 1)
		require.NoError(t, err)
		assert.Equal(t, "Arjun Singh", details.Summary.WinningCandidate)
		assert.Equal(t, 0, details.Summary.VictoryMargin)
	}
}
