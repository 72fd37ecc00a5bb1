package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hackboard/internal/config"
	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"go.uber.org/zap"
)

// DefaultScoringService reduces raw votes into weighted per-team scores.
type DefaultScoringService struct {
	voteRepo      repository.VoteRepository
	criterionRepo repository.CriterionRepository
	finalRepo     repository.FinalizationRepository
	cache         *CacheService
	cfg           *config.Config
	logger        *zap.Logger
}

func NewScoringService(
	voteRepo repository.VoteRepository,
	criterionRepo repository.CriterionRepository,
	finalRepo repository.FinalizationRepository,
	cache *CacheService,
	cfg *config.Config,
	logger *zap.Logger,
) *DefaultScoringService {
	return &DefaultScoringService{
		voteRepo:      voteRepo,
		criterionRepo: criterionRepo,
		finalRepo:     finalRepo,
		cache:         cache,
		cfg:           cfg,
		logger:        logger,
	}
}

// GetEventSummary returns the weighted per-team scores for the polling
// surface, served from cache when fresh.
func (s *DefaultScoringService) GetEventSummary(ctx context.Context, eventID string) (*domain.EventSummary, error) {
	if cached := s.cache.GetEventSummary(ctx, eventID); cached != nil {
		return cached, nil
	}

	summary, err := s.ComputeEventSummary(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.cache.SetEventSummary(ctx, summary)
	return summary, nil
}

// ComputeEventSummary recomputes the summary from storage, bypassing the
// cache. The finalizer calls this so it observes every committed vote.
func (s *DefaultScoringService) ComputeEventSummary(ctx context.Context, eventID string) (*domain.EventSummary, error) {
	tallies, err := s.voteRepo.GetTeamTallies(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team tallies: %w", err)
	}

	criteria, err := s.criterionRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}

	totalVotes, err := s.voteRepo.CountVotes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	finalized, err := s.IsFinalized(ctx, eventID)
	if err != nil {
		return nil, err
	}

	teams := BuildTeamSummaries(tallies, s.cfg.JuryWeight, s.cfg.PeerWeight, s.cfg.PointsPerStar, len(criteria))

	return &domain.EventSummary{
		EventID:    eventID,
		Teams:      teams,
		TotalVotes: totalVotes,
		Finalized:  finalized,
		LastUpdate: time.Now(),
	}, nil
}

// IsFinalized reports whether a finalization record exists for the event.
func (s *DefaultScoringService) IsFinalized(ctx context.Context, eventID string) (bool, error) {
	if finalized, known := s.cache.GetFinalizedFlag(ctx, eventID); known {
		return finalized, nil
	}

	record, err := s.finalRepo.Get(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("failed to check finalization: %w", err)
	}

	if record != nil {
		s.cache.MarkFinalized(ctx, eventID)
		return true, nil
	}
	return false, nil
}

// BuildTeamSummaries converts raw tallies into weighted summaries, sorted
// descending by total points. Scores are normalized by voter count before
// weighting so a team gains nothing from more peers choosing to vote for it.
// Ties keep registration order (the tallies arrive in registration order and
// the sort is stable).
func BuildTeamSummaries(tallies []repository.TeamTally, juryWeight, peerWeight, pointsPerStar float64, criterionCount int) []domain.TeamSummary {
	teams := make([]domain.TeamSummary, 0, len(tallies))
	for _, tally := range tallies {
		teams = append(teams, scoreTeam(tally, juryWeight, peerWeight, pointsPerStar, criterionCount))
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].TotalPoints > teams[j].TotalPoints
	})

	return teams
}

func scoreTeam(tally repository.TeamTally, juryWeight, peerWeight, pointsPerStar float64, criterionCount int) domain.TeamSummary {
	// Empty buckets contribute 0, not NaN.
	var avgJury, avgPeer float64
	if tally.JuryCount > 0 {
		avgJury = float64(tally.JuryTotal) / float64(tally.JuryCount)
	}
	if tally.PeerCount > 0 {
		avgPeer = float64(tally.PeerTotal) / float64(tally.PeerCount)
	}

	weighted := avgJury*juryWeight + avgPeer*peerWeight

	return domain.TeamSummary{
		TeamID:         tally.TeamID,
		TeamName:       tally.TeamName,
		JuryTotalStars: tally.JuryTotal,
		JuryVoteCount:  tally.JuryCount,
		PeerTotalStars: tally.PeerTotal,
		PeerVoteCount:  tally.PeerCount,
		TotalPoints:    weighted * pointsPerStar * float64(criterionCount),
	}
}
