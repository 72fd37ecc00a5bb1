package service

import (
	"context"
	"encoding/json"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/pkg/redis"

	"go.uber.org/zap"
)

// CacheService provides cache-aside helpers over Redis. All methods are safe
// with a nil client: reads miss and writes are no-ops, so the engine degrades
// to database-only operation when Redis is not configured.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetTeamWithCache retrieves team data with the cache-aside pattern.
func (c *CacheService) GetTeamWithCache(ctx context.Context, teamID string, dbFallback func(ctx context.Context, id string) (*domain.Team, error)) (*domain.Team, error) {
	if c.redis == nil {
		return dbFallback(ctx, teamID)
	}

	cacheKey := c.redis.KeyBuilder.KeyCustom("voting:team:%s", teamID)

	cachedData, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cachedData != "" {
		var team domain.Team
		if unmarshalErr := json.Unmarshal([]byte(cachedData), &team); unmarshalErr == nil {
			c.logger.Debug("Team cache hit", zap.String("team_id", teamID))
			return &team, nil
		}
		c.logger.Warn("Team cache corrupted, falling back to database",
			zap.String("team_id", teamID))
	}

	team, err := dbFallback(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("database fallback failed: %w", err)
	}

	if team != nil {
		if data, err := json.Marshal(team); err == nil {
			_ = c.redis.Set(ctx, cacheKey, string(data), redis.TTLTeams)
		}
	}

	return team, nil
}

// GetEventSummary retrieves a cached event summary, nil on miss.
func (c *CacheService) GetEventSummary(ctx context.Context, eventID string) *domain.EventSummary {
	if c.redis == nil {
		return nil
	}

	cachedData, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyEventSummary(eventID))
	if err != nil || cachedData == "" {
		return nil
	}

	var summary domain.EventSummary
	if err := json.Unmarshal([]byte(cachedData), &summary); err != nil {
		c.logger.Warn("Summary cache corrupted", zap.String("event_id", eventID))
		return nil
	}
	return &summary
}

// SetEventSummary caches an event summary with the short polling TTL.
func (c *CacheService) SetEventSummary(ctx context.Context, summary *domain.EventSummary) {
	if c.redis == nil {
		return
	}
	if data, err := json.Marshal(summary); err == nil {
		_ = c.redis.Set(ctx, c.redis.KeyBuilder.KeyEventSummary(summary.EventID), string(data), redis.TTLSummary)
	}
}

// GetLeaderboard retrieves a cached leaderboard snapshot, nil on miss.
func (c *CacheService) GetLeaderboard(ctx context.Context, eventID string) *domain.LeaderboardSnapshot {
	if c.redis == nil {
		return nil
	}

	cachedData, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyLeaderboard(eventID))
	if err != nil || cachedData == "" {
		return nil
	}

	var snapshot domain.LeaderboardSnapshot
	if err := json.Unmarshal([]byte(cachedData), &snapshot); err != nil {
		c.logger.Warn("Leaderboard cache corrupted", zap.String("event_id", eventID))
		return nil
	}
	return &snapshot
}

// SetLeaderboard caches a leaderboard snapshot with the short polling TTL.
func (c *CacheService) SetLeaderboard(ctx context.Context, snapshot *domain.LeaderboardSnapshot) {
	if c.redis == nil {
		return
	}
	if data, err := json.Marshal(snapshot); err == nil {
		_ = c.redis.Set(ctx, c.redis.KeyBuilder.KeyLeaderboard(snapshot.EventID), string(data), redis.TTLLeaderboard)
	}
}

// GetVoterStatus retrieves a cached voter status, nil on miss.
func (c *CacheService) GetVoterStatus(ctx context.Context, eventID, voterID string) *domain.VoteStatus {
	if c.redis == nil {
		return nil
	}

	cachedData, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyVoterStatus(eventID, voterID))
	if err != nil || cachedData == "" {
		return nil
	}

	var status domain.VoteStatus
	if err := json.Unmarshal([]byte(cachedData), &status); err != nil {
		return nil
	}
	return &status
}

// SetVoterStatus caches a voter status.
func (c *CacheService) SetVoterStatus(ctx context.Context, eventID, voterID string, status *domain.VoteStatus) {
	if c.redis == nil {
		return
	}
	if data, err := json.Marshal(status); err == nil {
		_ = c.redis.Set(ctx, c.redis.KeyBuilder.KeyVoterStatus(eventID, voterID), string(data), redis.TTLVoterStatus)
	}
}

// GetFinalizedFlag returns (finalized, known). A missing key means the flag
// must be resolved from the database.
func (c *CacheService) GetFinalizedFlag(ctx context.Context, eventID string) (bool, bool) {
	if c.redis == nil {
		return false, false
	}

	val, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyFinalized(eventID))
	if err != nil || val == "" {
		return false, false
	}
	return val == "1", true
}

// MarkFinalized caches the finalized flag. Only ever set to true; the flag
// never reverts.
func (c *CacheService) MarkFinalized(ctx context.Context, eventID string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Set(ctx, c.redis.KeyBuilder.KeyFinalized(eventID), "1", redis.TTLFinalized)
}

// GetJuryList retrieves a cached jury roster, nil on miss.
func (c *CacheService) GetJuryList(ctx context.Context, eventID string) []domain.JuryMember {
	if c.redis == nil {
		return nil
	}

	cachedData, err := c.redis.Get(ctx, c.redis.KeyBuilder.KeyJuryList(eventID))
	if err != nil || cachedData == "" {
		return nil
	}

	var members []domain.JuryMember
	if err := json.Unmarshal([]byte(cachedData), &members); err != nil {
		return nil
	}
	return members
}

// SetJuryList caches a jury roster.
func (c *CacheService) SetJuryList(ctx context.Context, eventID string, members []domain.JuryMember) {
	if c.redis == nil {
		return
	}
	if data, err := json.Marshal(members); err == nil {
		_ = c.redis.Set(ctx, c.redis.KeyBuilder.KeyJuryList(eventID), string(data), redis.TTLJury)
	}
}

// InvalidateEventCaches drops the summary and leaderboard for an event.
// Called after every vote write so polls converge quickly.
func (c *CacheService) InvalidateEventCaches(ctx context.Context, eventID string) {
	if c.redis == nil {
		return
	}
	err := c.redis.Delete(ctx,
		c.redis.KeyBuilder.KeyEventSummary(eventID),
		c.redis.KeyBuilder.KeyLeaderboard(eventID),
	)
	if err != nil {
		c.logger.Warn("Failed to invalidate event caches",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
}

// InvalidateVoterStatus drops the cached status for one voter.
func (c *CacheService) InvalidateVoterStatus(ctx context.Context, eventID, voterID string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, c.redis.KeyBuilder.KeyVoterStatus(eventID, voterID))
}

// InvalidateJuryList drops the cached roster for an event.
func (c *CacheService) InvalidateJuryList(ctx context.Context, eventID string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, c.redis.KeyBuilder.KeyJuryList(eventID))
}

// TryFinalizeLock attempts the advisory finalize lock. It short-circuits
// operator double-clicks; the database insert remains the correctness guard.
func (c *CacheService) TryFinalizeLock(ctx context.Context, eventID string) bool {
	if c.redis == nil {
		return true
	}
	ok, err := c.redis.SetNX(ctx, c.finalizeLockKey(eventID), "1", redis.TTLFinalizeLock)
	if err != nil {
		// Redis trouble must not block finalization.
		return true
	}
	return ok
}

// ReleaseFinalizeLock drops the advisory finalize lock. Called when a
// finalize attempt fails before the record exists, so a retry does not sit
// out the lock TTL.
func (c *CacheService) ReleaseFinalizeLock(ctx context.Context, eventID string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, c.finalizeLockKey(eventID))
}

func (c *CacheService) finalizeLockKey(eventID string) string {
	return c.redis.KeyBuilder.KeyCustom("scoring:event:%s:finalize_lock", eventID)
}

// HealthCheck verifies the cache connection
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Health(ctx)
}
