package domain

import "time"

// Team represents a competing team
type Team struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Color      string       `json:"color"`
	Members    []TeamMember `json:"members,omitempty"`
	MemberIDs  []string     `json:"-"`
	PrePoints  int          `json:"pre_points"` // cumulative points earned before the event, read-only input
	BadgeCount int          `json:"badge_count"`
	CreatedAt  time.Time    `json:"created_at"`
}

// TeamMember is a student belonging to a team.
type TeamMember struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}
