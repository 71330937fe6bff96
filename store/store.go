// Package store provides typed read-only access to the election schema. All
// queries take bound parameters, absence of a row is a normal empty result,
// and driver/connectivity failures surface as ErrUnavailable for the service
// layer to translate.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrUnavailable wraps any driver or connectivity failure. Callers decide
// how to present it; the raw driver text stays in the wrapped error for logs.
var ErrUnavailable = errors.New("datastore unavailable")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// Joined row shapes returned by the multi-table reads below.

type BoothInfo struct {
	BoothID      int    `json:"booth_id"`
	BoothNumber  string `json:"booth_number"`
	BoothName    string `json:"booth_name"`
	ACID         int    `json:"ac_id"`
	ACName       string `json:"ac_name"`
	ACNumber     int    `json:"ac_number"`
	DistrictName string `json:"district_name"`
}

type ConstituencyInfo struct {
	ACID         int    `json:"ac_id"`
	ACName       string `json:"ac_name"`
	ACNumber     int    `json:"ac_number"`
	DistrictID   int    `json:"district_id"`
	DistrictName string `json:"district_name"`
	StateName    string `json:"state_name"`
}

// ResultRow is one candidate's booth-level tally joined with candidate and
// party details.
type ResultRow struct {
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
	PartySymbol   string `json:"party_symbol"`
	Votes         int    `json:"votes"`
}

// BoothTurnoutRow is one booth's turnout record joined with booth identity,
// one row per booth in a constituency.
type BoothTurnoutRow struct {
	BoothID        int    `json:"booth_id"`
	BoothNumber    string `json:"booth_number"`
	BoothName      string `json:"booth_name"`
	TotalElectors  int    `json:"total_electors"`
	MaleVoters     int    `json:"male_voters"`
	FemaleVoters   int    `json:"female_voters"`
	OtherVoters    int    `json:"other_voters"`
	TotalVotesCast int    `json:"total_votes_cast"`
}

// ConstituencyResultRow is one (booth, candidate) tally across a whole
// constituency.
type ConstituencyResultRow struct {
	BoothID       int    `json:"booth_id"`
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
	Votes         int    `json:"votes"`
}

// SummaryRow holds constituency-level totals computed by the store so the
// service can cross-check them against per-booth aggregation.
type SummaryRow struct {
	TotalBooths    int `json:"total_booths"`
	TotalElectors  int `json:"total_electors"`
	TotalVotesCast int `json:"total_votes_cast"`
}

// countRows runs a COUNT(*) style query used by the paginated list reads.
func (s *Store) countRows(ctx context.Context, op, query string, args ...interface{}) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, wrapErr(op, err)
	}
	return total, nil
}
