// Package service orchestrates the composite booth-analysis workflows: it
// fetches plain rows through the store, applies the analytics formulas and
// assembles the response shapes the HTTP layer serializes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/vivekt74-lang/chunavmantra-backend/analytics"
	"github.com/vivekt74-lang/chunavmantra-backend/models"
	"github.com/vivekt74-lang/chunavmantra-backend/store"
)

// Error taxonomy. Handlers map these onto HTTP status codes; messages wrapped
// around them are user-safe, internal diagnostic detail is logged here and
// never returned.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("data unavailable")
)

// Datastore is the read surface the service needs. *store.Store satisfies
// it; tests substitute an in-memory implementation.
type Datastore interface {
	BoothByID(ctx context.Context, boothID int) (store.BoothInfo, bool, error)
	ConstituencyByID(ctx context.Context, acID int) (store.ConstituencyInfo, bool, error)
	TurnoutByBooth(ctx context.Context, boothID, electionID int) (models.BoothTurnout, bool, error)
	ResultsByBooth(ctx context.Context, boothID, electionID int) ([]store.ResultRow, error)
	TurnoutByConstituency(ctx context.Context, acID, electionID int) ([]store.BoothTurnoutRow, error)
	ResultRowsByConstituency(ctx context.Context, acID, electionID int) ([]store.ConstituencyResultRow, error)
	ConstituencySummary(ctx context.Context, acID, electionID int) (store.SummaryRow, bool, error)
}

type BoothAnalytics struct {
	ds         Datastore
	thresholds analytics.Thresholds
}

func New(ds Datastore) *BoothAnalytics {
	return NewWithThresholds(ds, analytics.DefaultThresholds())
}

func NewWithThresholds(ds Datastore, t analytics.Thresholds) *BoothAnalytics {
	return &BoothAnalytics{ds: ds, thresholds: t}
}

// translate converts a store failure into the taxonomy, logging the raw
// error and returning only a generic message to the caller.
func translate(op string, err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		log.Printf("%s: %v", op, err)
		return fmt.Errorf("%w: election data store is unreachable", ErrUnavailable)
	}
	log.Printf("%s: unexpected error: %v", op, err)
	return err
}

func notFoundConstituency(acID int) error {
	return fmt.Errorf("%w: constituency %d", ErrNotFound, acID)
}

// boothAggregate is the per-booth working set shared by the constituency
// level operations.
type boothAggregate struct {
	turnout      store.BoothTurnoutRow
	results      []store.ConstituencyResultRow
	validVotes   int
	turnoutPct   float64
	winner       store.ConstituencyResultRow
	hasWinner    bool
	winningShare float64
	margin       int
}

// constituencyAggregates loads and pre-computes the per-booth metrics for a
// constituency. Fails ErrNotFound when the constituency does not exist.
func (s *BoothAnalytics) constituencyAggregates(ctx context.Context, electionID, acID int) (store.ConstituencyInfo, []boothAggregate, error) {
	op := fmt.Sprintf("constituency aggregates ac=%d election=%d", acID, electionID)

	info, ok, err := s.ds.ConstituencyByID(ctx, acID)
	if err != nil {
		return store.ConstituencyInfo{}, nil, translate(op, err)
	}
	if !ok {
		return store.ConstituencyInfo{}, nil, notFoundConstituency(acID)
	}

	turnout, err := s.ds.TurnoutByConstituency(ctx, acID, electionID)
	if err != nil {
		return store.ConstituencyInfo{}, nil, translate(op, err)
	}

	resultRows, err := s.ds.ResultRowsByConstituency(ctx, acID, electionID)
	if err != nil {
		return store.ConstituencyInfo{}, nil, translate(op, err)
	}

	byBooth := make(map[int][]store.ConstituencyResultRow)
	for _, r := range resultRows {
		byBooth[r.BoothID] = append(byBooth[r.BoothID], r)
	}

	aggregates := make([]boothAggregate, 0, len(turnout))
	for _, t := range turnout {
		agg := boothAggregate{
			turnout:    t,
			results:    byBooth[t.BoothID],
			turnoutPct: analytics.TurnoutPercentage(t.TotalVotesCast, t.TotalElectors),
		}

		entries := make([]analytics.ResultEntry, 0, len(agg.results))
		for _, r := range agg.results {
			agg.validVotes += r.Votes
			entries = append(entries, analytics.ResultEntry{CandidateID: r.CandidateID, Votes: r.Votes})
		}

		if winner, ok := analytics.WinningEntry(entries); ok {
			for _, r := range agg.results {
				if r.CandidateID == winner.CandidateID {
					agg.winner = r
					agg.hasWinner = true
					break
				}
			}
			agg.winningShare = analytics.VoteSharePercentage(winner.Votes, agg.validVotes)
			agg.margin = analytics.VictoryMargin(entries)
		}

		aggregates = append(aggregates, agg)
	}

	return info, aggregates, nil
}

// sortByBoothNumber orders aggregates by the numeric value of the stored
// booth number text.
func sortByBoothNumber(aggs []boothAggregate) {
	sort.SliceStable(aggs, func(i, j int) bool {
		return analytics.LessBoothNumber(aggs[i].turnout.BoothNumber, aggs[j].turnout.BoothNumber)
	})
}
