package store

import (
	"context"
	"database/sql"

	"github.com/vivekt74-lang/chunavmantra-backend/models"
)

func (s *Store) BoothByID(ctx context.Context, boothID int) (BoothInfo, bool, error) {
	var b BoothInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT b.booth_id, COALESCE(b.booth_number, ''), COALESCE(b.booth_name, ''),
		       ac.ac_id, ac.ac_name, COALESCE(ac.ac_number, 0), d.district_name
		FROM booths b
		JOIN assembly_constituencies ac ON ac.ac_id = b.ac_id
		JOIN districts d ON d.district_id = ac.district_id
		WHERE b.booth_id = $1`, boothID).Scan(
		&b.BoothID, &b.BoothNumber, &b.BoothName,
		&b.ACID, &b.ACName, &b.ACNumber, &b.DistrictName,
	)
	if err == sql.ErrNoRows {
		return BoothInfo{}, false, nil
	}
	if err != nil {
		return BoothInfo{}, false, wrapErr("booth by id", err)
	}
	return b, true, nil
}

func (s *Store) BoothsByConstituency(ctx context.Context, acID int) ([]models.Booth, error) {
	// booth_number is stored as text; cast the leading digits for a numeric
	// sort and let ties fall back to the raw text.
	rows, err := s.db.QueryContext(ctx, `
		SELECT booth_id, COALESCE(booth_number, ''), COALESCE(booth_name, ''), ac_id
		FROM booths
		WHERE ac_id = $1
		ORDER BY NULLIF(regexp_replace(booth_number, '\D.*$', ''), '')::int NULLS LAST,
		         booth_number`, acID)
	if err != nil {
		return nil, wrapErr("booths by constituency", err)
	}
	defer rows.Close()

	booths := []models.Booth{}
	for rows.Next() {
		var b models.Booth
		if err := rows.Scan(&b.BoothID, &b.BoothNumber, &b.BoothName, &b.ACID); err != nil {
			return nil, wrapErr("booths scan", err)
		}
		booths = append(booths, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("booths rows", err)
	}
	return booths, nil
}

func (s *Store) TurnoutByBooth(ctx context.Context, boothID, electionID int) (models.BoothTurnout, bool, error) {
	var t models.BoothTurnout
	err := s.db.QueryRowContext(ctx, `
		SELECT booth_id, election_id,
		       COALESCE(total_electors, 0), COALESCE(male_voters, 0),
		       COALESCE(female_voters, 0), COALESCE(other_voters, 0),
		       COALESCE(total_votes_cast, 0)
		FROM booth_turnout
		WHERE booth_id = $1 AND election_id = $2`, boothID, electionID).Scan(
		&t.BoothID, &t.ElectionID,
		&t.TotalElectors, &t.MaleVoters,
		&t.FemaleVoters, &t.OtherVoters,
		&t.TotalVotesCast,
	)
	if err == sql.ErrNoRows {
		return models.BoothTurnout{}, false, nil
	}
	if err != nil {
		return models.BoothTurnout{}, false, wrapErr("turnout by booth", err)
	}
	return t, true, nil
}

// TurnoutByConstituency returns one turnout row per booth in the
// constituency. Booths without a turnout record for the election still appear
// with zeroed counts so analysis covers every booth.
func (s *Store) TurnoutByConstituency(ctx context.Context, acID, electionID int) ([]BoothTurnoutRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.booth_id, COALESCE(b.booth_number, ''), COALESCE(b.booth_name, ''),
		       COALESCE(bt.total_electors, 0), COALESCE(bt.male_voters, 0),
		       COALESCE(bt.female_voters, 0), COALESCE(bt.other_voters, 0),
		       COALESCE(bt.total_votes_cast, 0)
		FROM booths b
		LEFT JOIN booth_turnout bt ON bt.booth_id = b.booth_id AND bt.election_id = $2
		WHERE b.ac_id = $1
		ORDER BY NULLIF(regexp_replace(b.booth_number, '\D.*$', ''), '')::int NULLS LAST,
		         b.booth_number`, acID, electionID)
	if err != nil {
		return nil, wrapErr("turnout by constituency", err)
	}
	defer rows.Close()

	turnout := []BoothTurnoutRow{}
	for rows.Next() {
		var t BoothTurnoutRow
		if err := rows.Scan(
			&t.BoothID, &t.BoothNumber, &t.BoothName,
			&t.TotalElectors, &t.MaleVoters,
			&t.FemaleVoters, &t.OtherVoters,
			&t.TotalVotesCast,
		); err != nil {
			return nil, wrapErr("turnout scan", err)
		}
		turnout = append(turnout, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("turnout rows", err)
	}
	return turnout, nil
}

// ResultsByBooth returns the booth's candidate tallies ordered by votes
// descending with candidate_id breaking ties, matching the engine's
// deterministic tie-break.
func (s *Store) ResultsByBooth(ctx context.Context, boothID, electionID int) ([]ResultRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.candidate_id, c.candidate_name,
		       COALESCE(p.party_name, ''), COALESCE(p.party_symbol, ''),
		       COALESCE(br.votes_secured, 0)
		FROM booth_results br
		JOIN candidates c ON c.candidate_id = br.candidate_id
		LEFT JOIN parties p ON p.party_id = c.party_id
		WHERE br.booth_id = $1 AND br.election_id = $2
		ORDER BY br.votes_secured DESC, c.candidate_id`, boothID, electionID)
	if err != nil {
		return nil, wrapErr("results by booth", err)
	}
	defer rows.Close()

	results := []ResultRow{}
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(&r.CandidateID, &r.CandidateName, &r.PartyName, &r.PartySymbol, &r.Votes); err != nil {
			return nil, wrapErr("results scan", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("results rows", err)
	}
	return results, nil
}

// ResultRowsByConstituency returns every (booth, candidate) tally in the
// constituency. Winner determination and share math happen in the analytics
// layer, not here.
func (s *Store) ResultRowsByConstituency(ctx context.Context, acID, electionID int) ([]ConstituencyResultRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT br.booth_id, c.candidate_id, c.candidate_name,
		       COALESCE(p.party_name, ''), COALESCE(br.votes_secured, 0)
		FROM booth_results br
		JOIN booths b ON b.booth_id = br.booth_id
		JOIN candidates c ON c.candidate_id = br.candidate_id
		LEFT JOIN parties p ON p.party_id = c.party_id
		WHERE b.ac_id = $1 AND br.election_id = $2
		ORDER BY br.booth_id, br.votes_secured DESC, c.candidate_id`, acID, electionID)
	if err != nil {
		return nil, wrapErr("result rows by constituency", err)
	}
	defer rows.Close()

	results := []ConstituencyResultRow{}
	for rows.Next() {
		var r ConstituencyResultRow
		if err := rows.Scan(&r.BoothID, &r.CandidateID, &r.CandidateName, &r.PartyName, &r.Votes); err != nil {
			return nil, wrapErr("result rows scan", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("result rows", err)
	}
	return results, nil
}

// ConstituencySummary computes the constituency totals in SQL. The service
// cross-checks these against its per-booth aggregation.
func (s *Store) ConstituencySummary(ctx context.Context, acID, electionID int) (SummaryRow, bool, error) {
	var sum SummaryRow
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(b.booth_id),
		       COALESCE(SUM(bt.total_electors), 0),
		       COALESCE(SUM(bt.total_votes_cast), 0)
		FROM booths b
		LEFT JOIN booth_turnout bt ON bt.booth_id = b.booth_id AND bt.election_id = $2
		WHERE b.ac_id = $1`, acID, electionID).Scan(
		&sum.TotalBooths, &sum.TotalElectors, &sum.TotalVotesCast,
	)
	if err != nil {
		return SummaryRow{}, false, wrapErr("constituency summary", err)
	}
	return sum, sum.TotalBooths > 0, nil
}
