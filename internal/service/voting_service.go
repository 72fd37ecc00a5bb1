package service

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultVotingService handles vote collection and its policy checks.
type DefaultVotingService struct {
	voteRepo      repository.VoteRepository
	teamRepo      repository.TeamRepository
	criterionRepo repository.CriterionRepository
	scoring       ScoringService
	cache         *CacheService
	logger        *zap.Logger
}

func NewVotingService(
	voteRepo repository.VoteRepository,
	teamRepo repository.TeamRepository,
	criterionRepo repository.CriterionRepository,
	scoring ScoringService,
	cache *CacheService,
	logger *zap.Logger,
) *DefaultVotingService {
	return &DefaultVotingService{
		voteRepo:      voteRepo,
		teamRepo:      teamRepo,
		criterionRepo: criterionRepo,
		scoring:       scoring,
		cache:         cache,
		logger:        logger,
	}
}

// SubmitVote validates and stores one star rating. Resubmitting the same
// (team, criterion) updates the existing row, so a voter retrying after a
// network failure is safe. Validation order: frozen event first, then
// criterion and score bounds, then team policy checks.
func (s *DefaultVotingService) SubmitVote(ctx context.Context, eventID string, voter *domain.Voter, req *domain.VoteRequest) (*domain.VoteResponse, error) {
	finalized, err := s.scoring.IsFinalized(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, domain.ErrEventFinalized
	}

	criterion, err := s.criterionRepo.GetByID(ctx, eventID, req.CriterionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}
	if criterion == nil {
		return nil, domain.ErrCriterionNotFound
	}

	if req.Score < 1 || req.Score > criterion.MaxScore {
		return nil, domain.ErrInvalidScore
	}

	team, err := s.cache.GetTeamWithCache(ctx, req.TeamID, s.teamRepo.GetTeamByID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team == nil {
		return nil, domain.ErrTeamNotFound
	}

	if voter.Type == domain.VoterStudent {
		if voter.TeamID == req.TeamID {
			return nil, domain.ErrSelfVoteForbidden
		}

		// Peer voting is restricted to exactly one team per student. Jury
		// voters rate every team and skip this check.
		votedTeam, voted, err := s.voteRepo.GetVoterTeam(ctx, eventID, voter.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing votes: %w", err)
		}
		if voted && votedTeam != req.TeamID {
			return nil, domain.ErrTeamLocked
		}
	}

	vote := &domain.Vote{
		ID:          uuid.NewString(),
		EventID:     eventID,
		VoterID:     voter.ID,
		TeamID:      req.TeamID,
		CriterionID: req.CriterionID,
		Score:       req.Score,
		VoterType:   voter.Type,
	}

	if err := s.voteRepo.UpsertVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	s.cache.InvalidateEventCaches(ctx, eventID)
	s.cache.InvalidateVoterStatus(ctx, eventID, voter.ID)

	s.logger.Info("Vote stored",
		zap.String("event_id", eventID),
		zap.String("voter_id", voter.ID),
		zap.String("team_id", req.TeamID),
		zap.String("criterion_id", req.CriterionID),
		zap.Int("score", req.Score))

	return &domain.VoteResponse{
		VoteID:      vote.ID,
		TeamID:      vote.TeamID,
		CriterionID: vote.CriterionID,
		Score:       vote.Score,
		Timestamp:   vote.UpdatedAt,
		Message:     "Vote recorded",
	}, nil
}

// GetVoterVotes gets all votes cast by a voter in an event
func (s *DefaultVotingService) GetVoterVotes(ctx context.Context, eventID, voterID string) ([]domain.Vote, error) {
	votes, err := s.voteRepo.GetVotesForVoter(ctx, eventID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	return votes, nil
}

// GetVoteStatus reports whether the voter has voted and for which team.
// Jury voters rate many teams, so TeamID is omitted for them.
func (s *DefaultVotingService) GetVoteStatus(ctx context.Context, eventID string, voter *domain.Voter) (*domain.VoteStatus, error) {
	if cached := s.cache.GetVoterStatus(ctx, eventID, voter.ID); cached != nil {
		return cached, nil
	}

	teamID, voted, err := s.voteRepo.GetVoterTeam(ctx, eventID, voter.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote status: %w", err)
	}

	status := &domain.VoteStatus{Voted: voted}
	if voter.Type == domain.VoterStudent {
		status.TeamID = teamID
	}

	s.cache.SetVoterStatus(ctx, eventID, voter.ID, status)
	return status, nil
}

// ListCriteria gets the event's scoring criteria
func (s *DefaultVotingService) ListCriteria(ctx context.Context, eventID string) ([]domain.Criterion, error) {
	criteria, err := s.criterionRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	return criteria, nil
}
