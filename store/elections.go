package store

import (
	"context"
	"database/sql"

	"github.com/vivekt74-lang/chunavmantra-backend/models"
)

// CurrentElection returns the most recent election. The dataset always
// carries at least one election; the boolean reports an empty table.
func (s *Store) CurrentElection(ctx context.Context) (models.Election, bool, error) {
	var e models.Election
	err := s.db.QueryRowContext(ctx, `
		SELECT election_id, election_year
		FROM elections
		ORDER BY election_year DESC, election_id DESC
		LIMIT 1`).Scan(&e.ElectionID, &e.ElectionYear)
	if err == sql.ErrNoRows {
		return models.Election{}, false, nil
	}
	if err != nil {
		return models.Election{}, false, wrapErr("current election", err)
	}
	return e, true, nil
}

func (s *Store) ElectionByYear(ctx context.Context, year int) (models.Election, bool, error) {
	var e models.Election
	err := s.db.QueryRowContext(ctx, `
		SELECT election_id, election_year
		FROM elections
		WHERE election_year = $1`, year).Scan(&e.ElectionID, &e.ElectionYear)
	if err == sql.ErrNoRows {
		return models.Election{}, false, nil
	}
	if err != nil {
		return models.Election{}, false, wrapErr("election by year", err)
	}
	return e, true, nil
}

func (s *Store) Elections(ctx context.Context) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT election_id, election_year
		FROM elections
		ORDER BY election_year DESC`)
	if err != nil {
		return nil, wrapErr("elections", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ElectionID, &e.ElectionYear); err != nil {
			return nil, wrapErr("elections scan", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("elections rows", err)
	}
	return elections, nil
}
