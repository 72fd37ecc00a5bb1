package domain

import "time"

// LeaderboardEntry merges a team's pre-event points with its live event
// score. Total = PrePoints + HackPoints.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	TeamID     string  `json:"team_id"`
	TeamName   string  `json:"team_name"`
	TeamColor  string  `json:"team_color"`
	PrePoints  int     `json:"pre_points"`
	HackPoints float64 `json:"hack_points"`
	Total      float64 `json:"total"`
	Badges     int     `json:"badges"`
}

// LeaderboardSnapshot is a consistent ranking as of GeneratedAt. It holds no
// persisted state; every poll recomputes it from the store.
type LeaderboardSnapshot struct {
	EventID     string             `json:"event_id"`
	Entries     []LeaderboardEntry `json:"entries"`
	Finalized   bool               `json:"finalized"`
	GeneratedAt time.Time          `json:"generated_at"`
}
