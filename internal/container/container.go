package container

import (
	"context"

	"hackboard/internal/config"
	"hackboard/internal/repository"
	"hackboard/internal/service"
	"hackboard/internal/service/auth"
	"hackboard/pkg/database"
	"hackboard/pkg/logger"
	"hackboard/pkg/metrics"
	"hackboard/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client
	Registry    *prometheus.Registry
	Metrics     *metrics.Metrics
	Repos       *repository.Repositories
	Cache       *service.CacheService

	Auth        service.AuthService
	Voting      service.VotingService
	Scoring     service.ScoringService
	Leaderboard service.LeaderboardService
	Finalize    service.FinalizeService
	Jury        service.JuryService
}

// New creates a new dependency injection container. Redis is optional: when
// it is not configured or unreachable the engine runs database-only.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	repos := &repository.Repositories{
		Votes:         repository.NewVoteRepository(db),
		Teams:         repository.NewTeamRepository(db),
		Criteria:      repository.NewCriterionRepository(db),
		Jury:          repository.NewJuryRepository(db),
		Finalizations: repository.NewFinalizationRepository(db),
		Ledger:        repository.NewLedgerRepository(db),
	}

	cache := service.NewCacheService(redisClient, log.Logger)

	scoring := service.NewScoringService(repos.Votes, repos.Criteria, repos.Finalizations, cache, cfg, log.Logger)
	voting := service.NewVotingService(repos.Votes, repos.Teams, repos.Criteria, scoring, cache, log.Logger)
	leaderboard := service.NewLeaderboardService(repos.Teams, scoring, cache, log.Logger)
	finalize := service.NewFinalizeService(repos.Teams, repos.Finalizations, repos.Ledger, scoring, cache, cfg, log.Logger)
	jury := service.NewJuryService(repos.Jury, cache, log.Logger)

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		Registry:    registry,
		Metrics:     m,
		Repos:       repos,
		Cache:       cache,
		Auth:        auth.NewService(cfg.JWTSecret, log),
		Voting:      voting,
		Scoring:     scoring,
		Leaderboard: leaderboard,
		Finalize:    finalize,
		Jury:        jury,
	}, nil
}

// Close releases the container's connections
func (c *Container) Close() {
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
