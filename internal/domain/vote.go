package domain

import "time"

// Vote is one star rating for a (voter, team, criterion) triple within an
// event. At most one row exists per triple; resubmission updates the row.
type Vote struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	VoterID     string    `json:"voter_id"`
	TeamID      string    `json:"team_id"`
	CriterionID string    `json:"criterion_id"`
	Score       int       `json:"score"`
	VoterType   VoterType `json:"voter_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VoteRequest represents a vote submission request
type VoteRequest struct {
	TeamID      string `json:"team_id" validate:"required"`
	CriterionID string `json:"criterion_id" validate:"required"`
	Score       int    `json:"score" validate:"required,min=1"`
}

// VoteResponse represents the response after a vote is stored
type VoteResponse struct {
	VoteID      string    `json:"vote_id"`
	TeamID      string    `json:"team_id"`
	CriterionID string    `json:"criterion_id"`
	Score       int       `json:"score"`
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
}

// VoteStatus answers "has this voter voted, and for which team". Students
// are locked to a single team after their first vote; for jury voters TeamID
// is always empty.
type VoteStatus struct {
	Voted  bool   `json:"voted"`
	TeamID string `json:"team_id,omitempty"`
}

// TeamSummary is the aggregated score of one team, split by rater bucket.
type TeamSummary struct {
	TeamID         string  `json:"team_id"`
	TeamName       string  `json:"team_name"`
	JuryTotalStars int     `json:"jury_total_stars"`
	JuryVoteCount  int     `json:"jury_vote_count"`
	PeerTotalStars int     `json:"peer_total_stars"`
	PeerVoteCount  int     `json:"peer_vote_count"`
	TotalPoints    float64 `json:"total_points"`
}

// EventSummary is the polling payload for the live score view.
type EventSummary struct {
	EventID    string        `json:"event_id"`
	Teams      []TeamSummary `json:"teams"`
	TotalVotes int           `json:"total_votes"`
	Finalized  bool          `json:"finalized"`
	LastUpdate time.Time     `json:"last_update"`
}
