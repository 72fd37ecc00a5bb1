package domain

import "time"

// TeamResult is one team's frozen line in a finalization breakdown.
type TeamResult struct {
	Rank            int     `json:"rank"`
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	VotePoints      float64 `json:"vote_points"`
	PrizePoints     int     `json:"prize_points"`
	TotalPoints     int     `json:"total_points"`
	MemberCount     int     `json:"member_count"`
	PointsPerMember int     `json:"points_per_member"`
	DroppedPoints   int     `json:"dropped_points"` // floor-division remainder, not paid out
}

// FinalizationRecord freezes an event's results. Its existence is the sole
// gate for "is this event finalized"; it is created exactly once and never
// mutated.
type FinalizationRecord struct {
	EventID     string       `json:"event_id"`
	Label       string       `json:"label"`
	FinalizedAt time.Time    `json:"finalized_at"`
	Results     []TeamResult `json:"results"`
}

// FinalizeRequest represents the operator's finalize call
type FinalizeRequest struct {
	Label string `json:"label" validate:"required,max=200"`
}
