package store

import (
	"context"
	"database/sql"

	"github.com/vivekt74-lang/chunavmantra-backend/models"
)

func (s *Store) StateByID(ctx context.Context, stateID int) (models.State, bool, error) {
	var st models.State
	err := s.db.QueryRowContext(ctx, `
		SELECT state_id, state_name
		FROM states
		WHERE state_id = $1`, stateID).Scan(&st.StateID, &st.StateName)
	if err == sql.ErrNoRows {
		return models.State{}, false, nil
	}
	if err != nil {
		return models.State{}, false, wrapErr("state by id", err)
	}
	return st, true, nil
}

func (s *Store) States(ctx context.Context, page, limit int) ([]models.State, int, error) {
	total, err := s.countRows(ctx, "states count", `SELECT COUNT(*) FROM states`)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT state_id, state_name
		FROM states
		ORDER BY state_name
		LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, wrapErr("states", err)
	}
	defer rows.Close()

	states := []models.State{}
	for rows.Next() {
		var st models.State
		if err := rows.Scan(&st.StateID, &st.StateName); err != nil {
			return nil, 0, wrapErr("states scan", err)
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("states rows", err)
	}
	return states, total, nil
}

func (s *Store) DistrictByID(ctx context.Context, districtID int) (models.District, bool, error) {
	var d models.District
	err := s.db.QueryRowContext(ctx, `
		SELECT district_id, district_name, state_id
		FROM districts
		WHERE district_id = $1`, districtID).Scan(&d.DistrictID, &d.DistrictName, &d.StateID)
	if err == sql.ErrNoRows {
		return models.District{}, false, nil
	}
	if err != nil {
		return models.District{}, false, wrapErr("district by id", err)
	}
	return d, true, nil
}

func (s *Store) DistrictsByState(ctx context.Context, stateID int) ([]models.District, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT district_id, district_name, state_id
		FROM districts
		WHERE state_id = $1
		ORDER BY district_name`, stateID)
	if err != nil {
		return nil, wrapErr("districts by state", err)
	}
	defer rows.Close()

	districts := []models.District{}
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.DistrictID, &d.DistrictName, &d.StateID); err != nil {
			return nil, wrapErr("districts scan", err)
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("districts rows", err)
	}
	return districts, nil
}

func (s *Store) ConstituencyByID(ctx context.Context, acID int) (ConstituencyInfo, bool, error) {
	var c ConstituencyInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT ac.ac_id, ac.ac_name, COALESCE(ac.ac_number, 0),
		       d.district_id, d.district_name, st.state_name
		FROM assembly_constituencies ac
		JOIN districts d ON d.district_id = ac.district_id
		JOIN states st ON st.state_id = d.state_id
		WHERE ac.ac_id = $1`, acID).Scan(
		&c.ACID, &c.ACName, &c.ACNumber,
		&c.DistrictID, &c.DistrictName, &c.StateName,
	)
	if err == sql.ErrNoRows {
		return ConstituencyInfo{}, false, nil
	}
	if err != nil {
		return ConstituencyInfo{}, false, wrapErr("constituency by id", err)
	}
	return c, true, nil
}

func (s *Store) ConstituenciesByDistrict(ctx context.Context, districtID int) ([]models.Constituency, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ac_id, ac_name, COALESCE(ac_number, 0), district_id
		FROM assembly_constituencies
		WHERE district_id = $1
		ORDER BY ac_number, ac_name`, districtID)
	if err != nil {
		return nil, wrapErr("constituencies by district", err)
	}
	defer rows.Close()

	constituencies := []models.Constituency{}
	for rows.Next() {
		var c models.Constituency
		if err := rows.Scan(&c.ACID, &c.ACName, &c.ACNumber, &c.DistrictID); err != nil {
			return nil, wrapErr("constituencies scan", err)
		}
		constituencies = append(constituencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("constituencies rows", err)
	}
	return constituencies, nil
}

// SearchConstituencies matches names by case-insensitive prefix, the same
// suggestion pattern used across the API's lookups.
func (s *Store) SearchConstituencies(ctx context.Context, q string, limit int) ([]models.Constituency, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ac_id, ac_name, COALESCE(ac_number, 0), district_id
		FROM assembly_constituencies
		WHERE LOWER(ac_name) LIKE LOWER($1 || '%')
		ORDER BY ac_name
		LIMIT $2`, q, limit)
	if err != nil {
		return nil, wrapErr("search constituencies", err)
	}
	defer rows.Close()

	constituencies := []models.Constituency{}
	for rows.Next() {
		var c models.Constituency
		if err := rows.Scan(&c.ACID, &c.ACName, &c.ACNumber, &c.DistrictID); err != nil {
			return nil, wrapErr("search constituencies scan", err)
		}
		constituencies = append(constituencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("search constituencies rows", err)
	}
	return constituencies, nil
}
