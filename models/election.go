package models

// Entity structs mirror the externally seeded relational schema. All access
// is read-only; rows are populated by the ingestion pipeline outside this
// service.

type State struct {
	StateID   int    `json:"state_id"`
	StateName string `json:"state_name"`
}

type District struct {
	DistrictID   int    `json:"district_id"`
	DistrictName string `json:"district_name"`
	StateID      int    `json:"state_id"`
}

type Constituency struct {
	ACID       int    `json:"ac_id"`
	ACName     string `json:"ac_name"`
	ACNumber   int    `json:"ac_number"`
	DistrictID int    `json:"district_id"`
	// Category is derived from the name pattern: "(SC)"/"(ST)" suffixed
	// names are reserved constituencies, everything else is general.
	Category string `json:"category"`
}

type Booth struct {
	BoothID     int    `json:"booth_id"`
	BoothNumber string `json:"booth_number"`
	BoothName   string `json:"booth_name"`
	ACID        int    `json:"ac_id"`
}

type Election struct {
	ElectionID   int `json:"election_id"`
	ElectionYear int `json:"election_year"`
}

type BoothTurnout struct {
	BoothID        int `json:"booth_id"`
	ElectionID     int `json:"election_id"`
	TotalElectors  int `json:"total_electors"`
	MaleVoters     int `json:"male_voters"`
	FemaleVoters   int `json:"female_voters"`
	OtherVoters    int `json:"other_voters"`
	TotalVotesCast int `json:"total_votes_cast"`
}

type BoothResult struct {
	BoothID      int `json:"booth_id"`
	ElectionID   int `json:"election_id"`
	CandidateID  int `json:"candidate_id"`
	VotesSecured int `json:"votes_secured"`
}

type Candidate struct {
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyID       int    `json:"party_id"`
	PartyName     string `json:"party_name,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Age           int    `json:"age,omitempty"`
	Category      string `json:"category,omitempty"`
}

type Party struct {
	PartyID     int    `json:"party_id"`
	PartyName   string `json:"party_name"`
	PartySymbol string `json:"party_symbol"`
}
