package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hackboard/internal/domain"
	"hackboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildTeamSummaries_WeightedScoring(t *testing.T) {
	// Jury average 4.6 and peer average 4.0 with the default 70/30 split
	// gives 4.42 weighted stars, 221 points over 5 criteria at 10 per star.
	tallies := []repository.TeamTally{
		{
			TeamID:    "team-rocket",
			TeamName:  "Rocket",
			JuryTotal: 23, JuryCount: 5,
			PeerTotal: 40, PeerCount: 10,
		},
	}

	teams := BuildTeamSummaries(tallies, 0.7, 0.3, 10, 5)

	require.Len(t, teams, 1)
	assert.InDelta(t, 221.0, teams[0].TotalPoints, 0.0001)
	assert.Equal(t, 23, teams[0].JuryTotalStars)
	assert.Equal(t, 10, teams[0].PeerVoteCount)
}

func TestBuildTeamSummaries_NormalizedByVoterCount(t *testing.T) {
	// A team rated 5 stars by 20 peers must not outrank a team rated 5
	// stars by 2 peers. Averaging removes the popularity advantage.
	tallies := []repository.TeamTally{
		{TeamID: "popular", TeamName: "Popular", PeerTotal: 100, PeerCount: 20},
		{TeamID: "small", TeamName: "Small", PeerTotal: 10, PeerCount: 2},
	}

	teams := BuildTeamSummaries(tallies, 0.7, 0.3, 10, 5)

	require.Len(t, teams, 2)
	assert.InDelta(t, teams[0].TotalPoints, teams[1].TotalPoints, 0.0001)
}

func TestBuildTeamSummaries_EmptyBuckets(t *testing.T) {
	tests := []struct {
		name     string
		tally    repository.TeamTally
		expected float64
	}{
		{
			name:     "no votes at all scores zero",
			tally:    repository.TeamTally{TeamID: "t1", TeamName: "T1"},
			expected: 0,
		},
		{
			name: "jury only, peer bucket contributes zero",
			tally: repository.TeamTally{
				TeamID: "t2", TeamName: "T2",
				JuryTotal: 20, JuryCount: 5, // avg 4.0
			},
			expected: 4.0 * 0.7 * 10 * 5,
		},
		{
			name: "peers only, jury bucket contributes zero",
			tally: repository.TeamTally{
				TeamID: "t3", TeamName: "T3",
				PeerTotal: 15, PeerCount: 3, // avg 5.0
			},
			expected: 5.0 * 0.3 * 10 * 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := BuildTeamSummaries([]repository.TeamTally{tt.tally}, 0.7, 0.3, 10, 5)
			require.Len(t, teams, 1)
			assert.InDelta(t, tt.expected, teams[0].TotalPoints, 0.0001)
		})
	}
}

func TestBuildTeamSummaries_SortedDescendingStableTies(t *testing.T) {
	// Tallies arrive in registration order; ties must keep it.
	tallies := []repository.TeamTally{
		{TeamID: "first", TeamName: "First", JuryTotal: 12, JuryCount: 3},  // avg 4.0
		{TeamID: "second", TeamName: "Second", JuryTotal: 20, JuryCount: 5}, // avg 4.0, tied
		{TeamID: "third", TeamName: "Third", JuryTotal: 25, JuryCount: 5},  // avg 5.0
	}

	teams := BuildTeamSummaries(tallies, 0.7, 0.3, 10, 5)

	require.Len(t, teams, 3)
	assert.Equal(t, "third", teams[0].TeamID)
	assert.Equal(t, "first", teams[1].TeamID)
	assert.Equal(t, "second", teams[2].TeamID)
}

func TestBuildTeamSummaries_Empty(t *testing.T) {
	teams := BuildTeamSummaries(nil, 0.7, 0.3, 10, 5)
	assert.Empty(t, teams)
}

func TestScoringService_ComputeEventSummary(t *testing.T) {
	voteRepo := new(MockVoteRepository)
	criterionRepo := new(MockCriterionRepository)
	finalRepo := new(MockFinalizationRepository)

	voteRepo.On("GetTeamTallies", mock.Anything, "hack-2026").Return([]repository.TeamTally{
		{TeamID: "team-rocket", TeamName: "Rocket", JuryTotal: 23, JuryCount: 5, PeerTotal: 40, PeerCount: 10},
	}, nil)
	criterionRepo.On("ListByEvent", mock.Anything, "hack-2026").Return(make([]domain.Criterion, 5), nil)
	voteRepo.On("CountVotes", mock.Anything, "hack-2026").Return(15, nil)
	finalRepo.On("Get", mock.Anything, "hack-2026").Return(nil, nil)

	svc := NewScoringService(voteRepo, criterionRepo, finalRepo, newTestCache(), testConfig(), zap.NewNop())

	summary, err := svc.ComputeEventSummary(context.Background(), "hack-2026")

	require.NoError(t, err)
	assert.Equal(t, "hack-2026", summary.EventID)
	assert.Equal(t, 15, summary.TotalVotes)
	assert.False(t, summary.Finalized)
	require.Len(t, summary.Teams, 1)
	assert.InDelta(t, 221.0, summary.Teams[0].TotalPoints, 0.0001)
	assert.WithinDuration(t, time.Now(), summary.LastUpdate, time.Minute)
}

func TestScoringService_IsFinalized(t *testing.T) {
	voteRepo := new(MockVoteRepository)
	criterionRepo := new(MockCriterionRepository)
	finalRepo := new(MockFinalizationRepository)

	finalRepo.On("Get", mock.Anything, "open-event").Return(nil, nil)
	finalRepo.On("Get", mock.Anything, "done-event").Return(&domain.FinalizationRecord{EventID: "done-event"}, nil)

	svc := NewScoringService(voteRepo, criterionRepo, finalRepo, newTestCache(), testConfig(), zap.NewNop())

	finalized, err := svc.IsFinalized(context.Background(), "open-event")
	require.NoError(t, err)
	assert.False(t, finalized)

	finalized, err = svc.IsFinalized(context.Background(), "done-event")
	require.NoError(t, err)
	assert.True(t, finalized)
}

func TestScoringService_TallyError(t *testing.T) {
	voteRepo := new(MockVoteRepository)
	criterionRepo := new(MockCriterionRepository)
	finalRepo := new(MockFinalizationRepository)

	voteRepo.On("GetTeamTallies", mock.Anything, "hack-2026").Return(nil, errors.New("connection refused"))

	svc := NewScoringService(voteRepo, criterionRepo, finalRepo, newTestCache(), testConfig(), zap.NewNop())

	_, err := svc.ComputeEventSummary(context.Background(), "hack-2026")
	assert.Error(t, err)
}
