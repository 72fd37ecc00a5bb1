package domain

// VoterType partitions raters into the two weight buckets used by scoring.
type VoterType string

const (
	// VoterStudent is a member of a competing team; peer weight bucket.
	VoterStudent VoterType = "student"
	// VoterJury is an external evaluator; jury weight bucket.
	VoterJury VoterType = "jury"
)

// Valid reports whether the voter type is one of the known buckets.
func (t VoterType) Valid() bool {
	return t == VoterStudent || t == VoterJury
}

// Voter is the authenticated identity submitting votes, derived from
// validated token claims at the boundary.
type Voter struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Type   VoterType `json:"type"`
	TeamID string    `json:"team_id,omitempty"` // empty for jury voters
}

// RoleOperator marks users allowed to manage the jury roster and finalize
// events. Operators are not voters.
const RoleOperator = "operator"

// AuthClaims are the validated claims of a platform-issued bearer token.
type AuthClaims struct {
	Sub    string `json:"sub"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
}

// Voter maps the claims to a voter identity. Teachers sit in the jury
// bucket. Returns nil for roles that do not vote.
func (c *AuthClaims) Voter() *Voter {
	var t VoterType
	switch c.Role {
	case "student":
		t = VoterStudent
	case "jury", "teacher":
		t = VoterJury
	default:
		return nil
	}
	return &Voter{ID: c.Sub, Name: c.Name, Type: t, TeamID: c.TeamID}
}

// IsOperator reports whether the claims allow roster management and
// finalization.
func (c *AuthClaims) IsOperator() bool {
	return c.Role == RoleOperator
}
