package domain

import "errors"

// Sentinel errors for the voting and finalization flow. Validation errors
// are recoverable at the caller; the finalization races are expected
// outcomes, not exceptions. ErrLedgerReconciliation is the only case that
// needs operator escalation.
var (
	// ErrInvalidScore means the score is outside [1, criterion.MaxScore].
	ErrInvalidScore = errors.New("score out of range")

	// ErrSelfVoteForbidden means a student tried to rate their own team.
	ErrSelfVoteForbidden = errors.New("students cannot vote for their own team")

	// ErrEventFinalized means a vote-mutating call arrived after the event
	// was frozen.
	ErrEventFinalized = errors.New("event is finalized, votes are closed")

	// ErrTeamLocked means a student already voted for a different team.
	// Peer voting is restricted to exactly one team per student.
	ErrTeamLocked = errors.New("student already voted for another team")

	// ErrAlreadyFinalized means a second finalize call lost the race; the
	// first result remains authoritative and no ledger writes happened.
	ErrAlreadyFinalized = errors.New("event already finalized")

	// ErrLedgerReconciliation means point distribution partially failed
	// after the finalization record was created. Retrying from scratch
	// would double-pay; manual correction is required.
	ErrLedgerReconciliation = errors.New("ledger distribution incomplete, reconciliation required")

	ErrTeamNotFound       = errors.New("team not found")
	ErrCriterionNotFound  = errors.New("criterion not found")
	ErrJuryMemberNotFound = errors.New("jury member not found")
)
