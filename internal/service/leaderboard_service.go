package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultLeaderboardService merges pre-event points with live event scores.
// It holds no persisted state; every snapshot is recomputed from the store.
type DefaultLeaderboardService struct {
	teamRepo repository.TeamRepository
	scoring  ScoringService
	cache    *CacheService
	logger   *zap.Logger
}

func NewLeaderboardService(
	teamRepo repository.TeamRepository,
	scoring ScoringService,
	cache *CacheService,
	logger *zap.Logger,
) *DefaultLeaderboardService {
	return &DefaultLeaderboardService{
		teamRepo: teamRepo,
		scoring:  scoring,
		cache:    cache,
		logger:   logger,
	}
}

// Snapshot builds a ranked view as of call time. Safe to call on every poll;
// the cached copy carries the short polling TTL.
func (s *DefaultLeaderboardService) Snapshot(ctx context.Context, eventID string) (*domain.LeaderboardSnapshot, error) {
	if cached := s.cache.GetLeaderboard(ctx, eventID); cached != nil {
		return cached, nil
	}

	var (
		teams   []domain.Team
		summary *domain.EventSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.GetTeams(gctx)
		if err != nil {
			return fmt.Errorf("failed to get teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		summary, err = s.scoring.GetEventSummary(gctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &domain.LeaderboardSnapshot{
		EventID:     eventID,
		Entries:     BuildStandings(teams, summary.Teams),
		Finalized:   summary.Finalized,
		GeneratedAt: time.Now(),
	}

	s.cache.SetLeaderboard(ctx, snapshot)
	return snapshot, nil
}

// BuildStandings merges teams with their event scores and ranks them by
// total = prePoints + hackPoints, descending. The input team order is
// registration order and the sort is stable, so equal totals keep
// registration order.
func BuildStandings(teams []domain.Team, summaries []domain.TeamSummary) []domain.LeaderboardEntry {
	points := make(map[string]float64, len(summaries))
	for _, summary := range summaries {
		points[summary.TeamID] = summary.TotalPoints
	}

	entries := make([]domain.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		hack := points[team.ID]
		entries = append(entries, domain.LeaderboardEntry{
			TeamID:     team.ID,
			TeamName:   team.Name,
			TeamColor:  team.Color,
			PrePoints:  team.PrePoints,
			HackPoints: hack,
			Total:      float64(team.PrePoints) + hack,
			Badges:     team.BadgeCount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
