package service

import (
	"context"

	"hackboard/internal/config"
	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Shared mocks for the repository and service interfaces used across the
// service tests.

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) GetVotesForVoter(ctx context.Context, eventID, voterID string) ([]domain.Vote, error) {
	args := m.Called(ctx, eventID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vote), args.Error(1)
}

func (m *MockVoteRepository) GetVoterTeam(ctx context.Context, eventID, voterID string) (string, bool, error) {
	args := m.Called(ctx, eventID, voterID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockVoteRepository) GetTeamTallies(ctx context.Context, eventID string) ([]repository.TeamTally, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TeamTally), args.Error(1)
}

func (m *MockVoteRepository) CountVotes(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetTeams(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

type MockCriterionRepository struct {
	mock.Mock
}

func (m *MockCriterionRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Criterion, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Criterion), args.Error(1)
}

func (m *MockCriterionRepository) GetByID(ctx context.Context, eventID, criterionID string) (*domain.Criterion, error) {
	args := m.Called(ctx, eventID, criterionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Criterion), args.Error(1)
}

type MockJuryRepository struct {
	mock.Mock
}

func (m *MockJuryRepository) Add(ctx context.Context, member *domain.JuryMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockJuryRepository) Remove(ctx context.Context, juryID string) error {
	args := m.Called(ctx, juryID)
	return args.Error(0)
}

func (m *MockJuryRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.JuryMember, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JuryMember), args.Error(1)
}

type MockFinalizationRepository struct {
	mock.Mock
}

func (m *MockFinalizationRepository) Get(ctx context.Context, eventID string) (*domain.FinalizationRecord, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalizationRecord), args.Error(1)
}

func (m *MockFinalizationRepository) Create(ctx context.Context, record *domain.FinalizationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AddPoints(ctx context.Context, studentID, eventID string, points int, reason string) error {
	args := m.Called(ctx, studentID, eventID, points, reason)
	return args.Error(0)
}

type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) GetEventSummary(ctx context.Context, eventID string) (*domain.EventSummary, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSummary), args.Error(1)
}

func (m *MockScoringService) ComputeEventSummary(ctx context.Context, eventID string) (*domain.EventSummary, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventSummary), args.Error(1)
}

func (m *MockScoringService) IsFinalized(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

// newTestCache returns a cache service with no Redis behind it; every read
// misses and every write is a no-op.
func newTestCache() *CacheService {
	return NewCacheService(nil, zap.NewNop())
}

func testConfig() *config.Config {
	return &config.Config{
		JuryWeight:    0.7,
		PeerWeight:    0.3,
		PointsPerStar: 10,
		PrizeSchedule: []int{2000, 1000, 500},
	}
}
