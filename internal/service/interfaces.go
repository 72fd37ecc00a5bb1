package service

import (
	"context"

	"hackboard/internal/domain"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// ValidateToken validates a platform-issued bearer token and returns
	// its claims
	ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error)
}

// VotingService defines the interface for vote collection
type VotingService interface {
	// SubmitVote validates and stores one star rating
	SubmitVote(ctx context.Context, eventID string, voter *domain.Voter, req *domain.VoteRequest) (*domain.VoteResponse, error)

	// GetVoterVotes retrieves all votes the voter has cast in the event,
	// used to pre-fill a resume-voting UI
	GetVoterVotes(ctx context.Context, eventID, voterID string) ([]domain.Vote, error)

	// GetVoteStatus reports whether the voter has voted and for which team
	GetVoteStatus(ctx context.Context, eventID string, voter *domain.Voter) (*domain.VoteStatus, error)

	// ListCriteria retrieves the event's scoring criteria
	ListCriteria(ctx context.Context, eventID string) ([]domain.Criterion, error)
}

// ScoringService defines the interface for score aggregation
type ScoringService interface {
	// GetEventSummary returns the weighted per-team scores, sorted
	// descending by total points. Served from cache on the polling path.
	GetEventSummary(ctx context.Context, eventID string) (*domain.EventSummary, error)

	// ComputeEventSummary recomputes the summary from storage, bypassing
	// the cache. Finalization uses this to observe all committed votes.
	ComputeEventSummary(ctx context.Context, eventID string) (*domain.EventSummary, error)

	// IsFinalized reports whether a finalization record exists
	IsFinalized(ctx context.Context, eventID string) (bool, error)
}

// LeaderboardService defines the interface for the merged standings view
type LeaderboardService interface {
	// Snapshot merges pre-event points with live event scores into a
	// ranked, consistent view as of call time
	Snapshot(ctx context.Context, eventID string) (*domain.LeaderboardSnapshot, error)
}

// FinalizeService defines the interface for the one-shot finalization
type FinalizeService interface {
	// Finalize freezes the event and distributes prize points. Exactly one
	// call succeeds per event.
	Finalize(ctx context.Context, eventID, label string) (*domain.FinalizationRecord, error)

	// GetRecord retrieves the frozen breakdown, nil if the event is open
	GetRecord(ctx context.Context, eventID string) (*domain.FinalizationRecord, error)
}

// JuryService defines the interface for jury roster management
type JuryService interface {
	// AddMember adds a jury roster entry
	AddMember(ctx context.Context, eventID, addedBy string, req *domain.JuryMemberRequest) (*domain.JuryMember, error)

	// RemoveMember removes a roster entry without touching votes
	RemoveMember(ctx context.Context, juryID string) error

	// ListMembers retrieves the roster for an event
	ListMembers(ctx context.Context, eventID string) ([]domain.JuryMember, error)
}
