package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"hackboard/internal/config"
	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"go.uber.org/zap"
)

// DefaultFinalizeService performs the one-shot finalization: freeze scores,
// assign rank prizes, and distribute points to members.
type DefaultFinalizeService struct {
	teamRepo  repository.TeamRepository
	finalRepo repository.FinalizationRepository
	ledger    repository.LedgerRepository
	scoring   ScoringService
	cache     *CacheService
	cfg       *config.Config
	logger    *zap.Logger
}

func NewFinalizeService(
	teamRepo repository.TeamRepository,
	finalRepo repository.FinalizationRepository,
	ledger repository.LedgerRepository,
	scoring ScoringService,
	cache *CacheService,
	cfg *config.Config,
	logger *zap.Logger,
) *DefaultFinalizeService {
	return &DefaultFinalizeService{
		teamRepo:  teamRepo,
		finalRepo: finalRepo,
		ledger:    ledger,
		scoring:   scoring,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
	}
}

// Finalize freezes the event and pays out points. The finalization record is
// inserted BEFORE any ledger write: the insert-if-absent on event_id is the
// exactly-once guard, so a racing caller loses the insert and never touches
// the ledger. If ledger writes partially fail after the record exists, the
// error is a reconciliation error, not a retryable one; retrying from
// scratch would double-pay.
func (s *DefaultFinalizeService) Finalize(ctx context.Context, eventID, label string) (*domain.FinalizationRecord, error) {
	// Advisory fast-path for operator double-clicks. Correctness does not
	// depend on it. Any failure before the record exists releases the lock
	// so the operator can retry without waiting out the TTL.
	if !s.cache.TryFinalizeLock(ctx, eventID) {
		return nil, domain.ErrAlreadyFinalized
	}

	existing, err := s.finalRepo.Get(ctx, eventID)
	if err != nil {
		s.cache.ReleaseFinalizeLock(ctx, eventID)
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyFinalized
	}

	// Bypass the cache: the freeze must observe every vote committed
	// before this call.
	summary, err := s.scoring.ComputeEventSummary(ctx, eventID)
	if err != nil {
		s.cache.ReleaseFinalizeLock(ctx, eventID)
		return nil, err
	}

	teams, err := s.teamRepo.GetTeams(ctx)
	if err != nil {
		s.cache.ReleaseFinalizeLock(ctx, eventID)
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	record := &domain.FinalizationRecord{
		EventID: eventID,
		Label:   label,
		Results: buildResults(summary.Teams, teams, s.cfg),
	}

	if err := s.finalRepo.Create(ctx, record); err != nil {
		// ErrAlreadyFinalized means another caller won the race and the
		// lock can stay. A transient insert failure left no record, so the
		// lock must not block the retry.
		if !errors.Is(err, domain.ErrAlreadyFinalized) {
			s.cache.ReleaseFinalizeLock(ctx, eventID)
		}
		return nil, err
	}

	s.cache.MarkFinalized(ctx, eventID)
	s.cache.InvalidateEventCaches(ctx, eventID)

	if err := s.distribute(ctx, eventID, label, record.Results, teams); err != nil {
		return nil, err
	}

	s.logger.Info("Event finalized",
		zap.String("event_id", eventID),
		zap.String("label", label),
		zap.Int("teams", len(record.Results)))

	return record, nil
}

// GetRecord gets the frozen breakdown, nil if the event is still open
func (s *DefaultFinalizeService) GetRecord(ctx context.Context, eventID string) (*domain.FinalizationRecord, error) {
	return s.finalRepo.Get(ctx, eventID)
}

// distribute writes each member's share to the ledger. Failures for
// individual students do not abort the rest of the distribution; they are
// collected and surfaced as one reconciliation error.
func (s *DefaultFinalizeService) distribute(ctx context.Context, eventID, label string, results []domain.TeamResult, teams []domain.Team) error {
	membersByTeam := make(map[string][]string, len(teams))
	for _, team := range teams {
		membersByTeam[team.ID] = team.MemberIDs
	}

	var failed []string
	for _, result := range results {
		if result.PointsPerMember == 0 {
			continue
		}
		reason := fmt.Sprintf("%s: rank %d", label, result.Rank)
		for _, studentID := range membersByTeam[result.TeamID] {
			if err := s.ledger.AddPoints(ctx, studentID, eventID, result.PointsPerMember, reason); err != nil {
				s.logger.Error("Ledger write failed",
					zap.String("event_id", eventID),
					zap.String("student_id", studentID),
					zap.Int("points", result.PointsPerMember),
					zap.Error(err))
				failed = append(failed, studentID)
			}
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: students [%s]", domain.ErrLedgerReconciliation, strings.Join(failed, ", "))
	}
	return nil
}

// buildResults assigns rank prizes on top of vote points and splits each
// team's total evenly across members. The floor-division remainder is
// dropped, never paid to anyone, and recorded so the loss is auditable.
func buildResults(summaries []domain.TeamSummary, teams []domain.Team, cfg *config.Config) []domain.TeamResult {
	memberCounts := make(map[string]int, len(teams))
	for _, team := range teams {
		memberCounts[team.ID] = len(team.MemberIDs)
	}

	results := make([]domain.TeamResult, 0, len(summaries))
	for i, summary := range summaries {
		rank := i + 1
		votePoints := summary.TotalPoints
		total := int(math.Round(votePoints)) + cfg.PrizeForRank(rank)
		memberCount := memberCounts[summary.TeamID]

		var perMember int
		if memberCount > 0 {
			perMember = total / memberCount
		}

		results = append(results, domain.TeamResult{
			Rank:            rank,
			TeamID:          summary.TeamID,
			TeamName:        summary.TeamName,
			VotePoints:      votePoints,
			PrizePoints:     cfg.PrizeForRank(rank),
			TotalPoints:     total,
			MemberCount:     memberCount,
			PointsPerMember: perMember,
			DroppedPoints:   total - perMember*memberCount,
		})
	}

	return results
}
