package service

import (
	"context"
	"errors"
	"testing"

	"hackboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func summaryFixture(teams ...domain.TeamSummary) *domain.EventSummary {
	return &domain.EventSummary{EventID: "hack-2026", Teams: teams}
}

func newFinalizeFixture(t *testing.T) (*DefaultFinalizeService, *MockTeamRepository, *MockFinalizationRepository, *MockLedgerRepository, *MockScoringService) {
	t.Helper()
	teamRepo := new(MockTeamRepository)
	finalRepo := new(MockFinalizationRepository)
	ledger := new(MockLedgerRepository)
	scoring := new(MockScoringService)

	svc := NewFinalizeService(teamRepo, finalRepo, ledger, scoring, newTestCache(), testConfig(), zap.NewNop())
	return svc, teamRepo, finalRepo, ledger, scoring
}

func TestFinalize_DistributesPoints(t *testing.T) {
	svc, teamRepo, finalRepo, ledger, scoring := newFinalizeFixture(t)

	// Winner has 221 vote points + 2000 rank prize = 2221 total across 4
	// members: 555 each, remainder 1 dropped.
	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 221},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", Name: "Rocket", MemberIDs: []string{"s-01", "s-02", "s-03", "s-04"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	for _, id := range []string{"s-01", "s-02", "s-03", "s-04"} {
		ledger.On("AddPoints", mock.Anything, id, "hack-2026", 555, "Demo Day: rank 1").Return(nil)
	}

	record, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")

	require.NoError(t, err)
	require.Len(t, record.Results, 1)
	result := record.Results[0]
	assert.Equal(t, 1, result.Rank)
	assert.Equal(t, 2000, result.PrizePoints)
	assert.Equal(t, 2221, result.TotalPoints)
	assert.Equal(t, 555, result.PointsPerMember)
	assert.Equal(t, 1, result.DroppedPoints)
	ledger.AssertExpectations(t)
}

func TestFinalize_PayoutConservation(t *testing.T) {
	svc, teamRepo, finalRepo, ledger, scoring := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 200},
		domain.TeamSummary{TeamID: "team-nebula", TeamName: "Nebula", TotalPoints: 150.4},
		domain.TeamSummary{TeamID: "team-quasar", TeamName: "Quasar", TotalPoints: 99.9},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", MemberIDs: []string{"s-01", "s-02", "s-03"}},
		{ID: "team-nebula", MemberIDs: []string{"s-04", "s-05"}},
		{ID: "team-quasar", MemberIDs: []string{"s-06", "s-07", "s-08", "s-09"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	var paid int
	ledger.On("AddPoints", mock.Anything, mock.Anything, "hack-2026", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { paid += args.Int(3) }).Return(nil)

	record, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	require.NoError(t, err)

	// Every point is either paid to a member or recorded as dropped.
	var total, dropped int
	for _, result := range record.Results {
		total += result.TotalPoints
		dropped += result.DroppedPoints
	}
	assert.Equal(t, total, paid+dropped)
	assert.Greater(t, paid, 0)
}

func TestFinalize_AlreadyFinalized(t *testing.T) {
	svc, _, finalRepo, ledger, scoring := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(&domain.FinalizationRecord{EventID: "hack-2026"}, nil)

	_, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	scoring.AssertNotCalled(t, "ComputeEventSummary", mock.Anything, mock.Anything)
	ledger.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalize_LosesInsertRace(t *testing.T) {
	// A concurrent caller created the record between our existence check and
	// our insert. The loser must not touch the ledger.
	svc, teamRepo, finalRepo, ledger, scoring := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 100},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", MemberIDs: []string{"s-01"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyFinalized)

	_, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	ledger.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalize_LedgerFailureIsReconciliation(t *testing.T) {
	// Once the record exists, a failed ledger write is a reconciliation
	// problem. Retrying the whole finalization would double-pay the members
	// whose writes succeeded.
	svc, teamRepo, finalRepo, ledger, scoring := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 221},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", MemberIDs: []string{"s-01", "s-02"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	ledger.On("AddPoints", mock.Anything, "s-01", "hack-2026", mock.Anything, mock.Anything).Return(nil)
	ledger.On("AddPoints", mock.Anything, "s-02", "hack-2026", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")

	require.ErrorIs(t, err, domain.ErrLedgerReconciliation)
	assert.Contains(t, err.Error(), "s-02")
	// The successful write still happened; distribution does not abort on
	// the first failure.
	ledger.AssertNumberOfCalls(t, "AddPoints", 2)
}

func TestFinalize_RetryAfterTransientFailure(t *testing.T) {
	// A transient store error before the record exists must release the
	// advisory lock: the immediate retry has to run, not get a false
	// "already finalized" for an event that is still open.
	teamRepo := new(MockTeamRepository)
	finalRepo := new(MockFinalizationRepository)
	ledger := new(MockLedgerRepository)
	scoring := new(MockScoringService)
	cache, _ := newMiniredisCache(t)

	svc := NewFinalizeService(teamRepo, finalRepo, ledger, scoring, cache, testConfig(), zap.NewNop())

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(nil, errors.New("connection refused")).Once()
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 100},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", MemberIDs: []string{"s-01"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	ledger.On("AddPoints", mock.Anything, "s-01", "hack-2026", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrAlreadyFinalized)

	record, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	require.NoError(t, err)
	assert.Len(t, record.Results, 1)
}

func TestFinalize_TransientInsertFailureReleasesLock(t *testing.T) {
	teamRepo := new(MockTeamRepository)
	finalRepo := new(MockFinalizationRepository)
	ledger := new(MockLedgerRepository)
	scoring := new(MockScoringService)
	cache, _ := newMiniredisCache(t)

	svc := NewFinalizeService(teamRepo, finalRepo, ledger, scoring, cache, testConfig(), zap.NewNop())

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 100},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", MemberIDs: []string{"s-01"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	ledger.On("AddPoints", mock.Anything, "s-01", "hack-2026", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	require.Error(t, err)

	_, err = svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	assert.NoError(t, err)
}

func TestFinalize_LockHeldAfterRaceLoss(t *testing.T) {
	// Losing the insert race is a real finalization; the lock stays and the
	// next call short-circuits on it.
	teamRepo := new(MockTeamRepository)
	finalRepo := new(MockFinalizationRepository)
	ledger := new(MockLedgerRepository)
	scoring := new(MockScoringService)
	cache, _ := newMiniredisCache(t)

	svc := NewFinalizeService(teamRepo, finalRepo, ledger, scoring, cache, testConfig(), zap.NewNop())

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil).Once()
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-rocket", TeamName: "Rocket", TotalPoints: 100},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-rocket", MemberIDs: []string{"s-01"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyFinalized)

	_, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	_, err = svc.Finalize(context.Background(), "hack-2026", "Demo Day")
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	// The second call never re-read the store; the lock answered it.
	finalRepo.AssertNumberOfCalls(t, "Get", 1)
	ledger.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalize_TeamWithNoMembers(t *testing.T) {
	svc, teamRepo, finalRepo, ledger, scoring := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "team-ghost", TeamName: "Ghost", TotalPoints: 180},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "team-ghost", Name: "Ghost"},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	record, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")

	require.NoError(t, err)
	require.Len(t, record.Results, 1)
	assert.Equal(t, 0, record.Results[0].PointsPerMember)
	ledger.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalize_PrizesByRank(t *testing.T) {
	svc, teamRepo, finalRepo, ledger, scoring := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)
	scoring.On("ComputeEventSummary", mock.Anything, "hack-2026").Return(summaryFixture(
		domain.TeamSummary{TeamID: "t1", TeamName: "T1", TotalPoints: 400},
		domain.TeamSummary{TeamID: "t2", TeamName: "T2", TotalPoints: 300},
		domain.TeamSummary{TeamID: "t3", TeamName: "T3", TotalPoints: 200},
		domain.TeamSummary{TeamID: "t4", TeamName: "T4", TotalPoints: 100},
	), nil)
	teamRepo.On("GetTeams", mock.Anything).Return([]domain.Team{
		{ID: "t1", MemberIDs: []string{"a"}},
		{ID: "t2", MemberIDs: []string{"b"}},
		{ID: "t3", MemberIDs: []string{"c"}},
		{ID: "t4", MemberIDs: []string{"d"}},
	}, nil)
	finalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	ledger.On("AddPoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	record, err := svc.Finalize(context.Background(), "hack-2026", "Demo Day")

	require.NoError(t, err)
	require.Len(t, record.Results, 4)
	assert.Equal(t, 2000, record.Results[0].PrizePoints)
	assert.Equal(t, 1000, record.Results[1].PrizePoints)
	assert.Equal(t, 500, record.Results[2].PrizePoints)
	// Ranks beyond the prize schedule get vote points only.
	assert.Equal(t, 0, record.Results[3].PrizePoints)
	assert.Equal(t, 100, record.Results[3].TotalPoints)
}

func TestGetRecord(t *testing.T) {
	svc, _, finalRepo, _, _ := newFinalizeFixture(t)

	finalRepo.On("Get", mock.Anything, "open-event").Return(nil, nil)

	record, err := svc.GetRecord(context.Background(), "open-event")
	require.NoError(t, err)
	assert.Nil(t, record)
}
