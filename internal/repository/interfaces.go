package repository

import (
	"context"

	"hackboard/internal/domain"
)

// TeamTally is one team's raw vote totals split by rater bucket, straight
// from storage. Weighting happens in the scoring service.
type TeamTally struct {
	TeamID    string
	TeamName  string
	JuryTotal int
	JuryCount int
	PeerTotal int
	PeerCount int
}

// VoteRepository defines the interface for vote storage operations
type VoteRepository interface {
	// UpsertVote stores a vote, updating the existing row for the same
	// (event, voter, team, criterion) key instead of creating a duplicate.
	UpsertVote(ctx context.Context, vote *domain.Vote) error

	// GetVotesForVoter retrieves all votes cast by a voter in an event
	GetVotesForVoter(ctx context.Context, eventID, voterID string) ([]domain.Vote, error)

	// GetVoterTeam reports whether the voter has voted in the event and,
	// if so, the team they voted for
	GetVoterTeam(ctx context.Context, eventID, voterID string) (string, bool, error)

	// GetTeamTallies returns raw per-team vote totals for every team,
	// including teams with no votes yet
	GetTeamTallies(ctx context.Context, eventID string) ([]TeamTally, error)

	// CountVotes returns the total number of vote rows in the event
	CountVotes(ctx context.Context, eventID string) (int, error)
}

// TeamRepository defines the interface for team reads. Team data is owned by
// the surrounding platform; the engine only reads it.
type TeamRepository interface {
	// GetTeams retrieves all teams in registration order
	GetTeams(ctx context.Context) ([]domain.Team, error)

	// GetTeamByID retrieves a team by ID, nil if absent
	GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// GetTeamMembers retrieves the members of a team
	GetTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error)
}

// CriterionRepository defines the interface for criterion reads
type CriterionRepository interface {
	// ListByEvent retrieves an event's criteria ordered by position
	ListByEvent(ctx context.Context, eventID string) ([]domain.Criterion, error)

	// GetByID retrieves one criterion, nil if absent
	GetByID(ctx context.Context, eventID, criterionID string) (*domain.Criterion, error)
}

// JuryRepository defines the interface for jury roster operations
type JuryRepository interface {
	// Add inserts a roster entry
	Add(ctx context.Context, member *domain.JuryMember) error

	// Remove deletes a roster entry; votes cast under that identity remain
	Remove(ctx context.Context, juryID string) error

	// ListByEvent retrieves the roster for an event
	ListByEvent(ctx context.Context, eventID string) ([]domain.JuryMember, error)
}

// FinalizationRepository defines the interface for the finalization gate
type FinalizationRepository interface {
	// Get retrieves the finalization record for an event, nil if the event
	// is still open
	Get(ctx context.Context, eventID string) (*domain.FinalizationRecord, error)

	// Create atomically inserts the record. Exactly one caller succeeds per
	// event; the losers get domain.ErrAlreadyFinalized.
	Create(ctx context.Context, record *domain.FinalizationRecord) error
}

// LedgerRepository defines the interface for the student point ledger.
// Only the finalizer writes through it.
type LedgerRepository interface {
	// AddPoints appends a ledger entry for a student
	AddPoints(ctx context.Context, studentID, eventID string, points int, reason string) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Votes         VoteRepository
	Teams         TeamRepository
	Criteria      CriterionRepository
	Jury          JuryRepository
	Finalizations FinalizationRepository
	Ledger        LedgerRepository
}
