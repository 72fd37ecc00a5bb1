package domain

import "time"

// JuryMember is a roster entry for an external evaluator. It is independent
// of the Voter identity used for weighting; removing a roster entry never
// deletes votes cast under that identity.
type JuryMember struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Icon      string    `json:"icon"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

// JuryMemberRequest represents a roster add request
type JuryMemberRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Role string `json:"role" validate:"required,max=100"`
	Icon string `json:"icon" validate:"max=50"`
}
