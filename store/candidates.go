package store

import (
	"context"
	"database/sql"

	"github.com/vivekt74-lang/chunavmantra-backend/models"
)

func (s *Store) CandidateByID(ctx context.Context, candidateID int) (models.Candidate, bool, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT c.candidate_id, c.candidate_name, COALESCE(c.party_id, 0),
		       COALESCE(p.party_name, ''), COALESCE(c.gender, ''),
		       COALESCE(c.age, 0), COALESCE(c.category, '')
		FROM candidates c
		LEFT JOIN parties p ON p.party_id = c.party_id
		WHERE c.candidate_id = $1`, candidateID).Scan(
		&c.CandidateID, &c.CandidateName, &c.PartyID,
		&c.PartyName, &c.Gender, &c.Age, &c.Category,
	)
	if err == sql.ErrNoRows {
		return models.Candidate{}, false, nil
	}
	if err != nil {
		return models.Candidate{}, false, wrapErr("candidate by id", err)
	}
	return c, true, nil
}

func (s *Store) Candidates(ctx context.Context, page, limit int) ([]models.Candidate, int, error) {
	total, err := s.countRows(ctx, "candidates count", `SELECT COUNT(*) FROM candidates`)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.candidate_id, c.candidate_name, COALESCE(c.party_id, 0),
		       COALESCE(p.party_name, ''), COALESCE(c.gender, ''),
		       COALESCE(c.age, 0), COALESCE(c.category, '')
		FROM candidates c
		LEFT JOIN parties p ON p.party_id = c.party_id
		ORDER BY c.candidate_name
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, wrapErr("candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.CandidateID, &c.CandidateName, &c.PartyID,
			&c.PartyName, &c.Gender, &c.Age, &c.Category,
		); err != nil {
			return nil, 0, wrapErr("candidates scan", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("candidates rows", err)
	}
	return candidates, total, nil
}

// CandidatesByConstituency lists the candidates who contested the
// constituency in the given election, with their constituency-wide totals.
func (s *Store) CandidatesByConstituency(ctx context.Context, acID, electionID int) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT c.candidate_id, c.candidate_name, COALESCE(c.party_id, 0),
		       COALESCE(p.party_name, ''), COALESCE(c.gender, ''),
		       COALESCE(c.age, 0), COALESCE(c.category, '')
		FROM booth_results br
		JOIN booths b ON b.booth_id = br.booth_id
		JOIN candidates c ON c.candidate_id = br.candidate_id
		LEFT JOIN parties p ON p.party_id = c.party_id
		WHERE b.ac_id = $1 AND br.election_id = $2
		ORDER BY c.candidate_name`, acID, electionID)
	if err != nil {
		return nil, wrapErr("candidates by constituency", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.CandidateID, &c.CandidateName, &c.PartyID,
			&c.PartyName, &c.Gender, &c.Age, &c.Category,
		); err != nil {
			return nil, wrapErr("candidates by constituency scan", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("candidates by constituency rows", err)
	}
	return candidates, nil
}

func (s *Store) Parties(ctx context.Context) ([]models.Party, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT party_id, party_name, COALESCE(party_symbol, '')
		FROM parties
		ORDER BY party_name`)
	if err != nil {
		return nil, wrapErr("parties", err)
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		var p models.Party
		if err := rows.Scan(&p.PartyID, &p.PartyName, &p.PartySymbol); err != nil {
			return nil, wrapErr("parties scan", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("parties rows", err)
	}
	return parties, nil
}
