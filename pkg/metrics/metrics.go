package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	VotesSubmitted   *prometheus.CounterVec
	LeaderboardPolls prometheus.Counter
	FinalizeAttempts *prometheus.CounterVec
}

// New registers the engine collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		VotesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hackboard_votes_submitted_total",
			Help: "Vote submissions by outcome.",
		}, []string{"outcome"}),
		LeaderboardPolls: factory.NewCounter(prometheus.CounterOpts{
			Name: "hackboard_leaderboard_polls_total",
			Help: "Leaderboard snapshot requests.",
		}),
		FinalizeAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hackboard_finalize_attempts_total",
			Help: "Finalize calls by outcome.",
		}, []string{"outcome"}),
	}
}

// Outcome labels for the counters above.
const (
	OutcomeOK               = "ok"
	OutcomeInvalidScore     = "invalid_score"
	OutcomeSelfVote         = "self_vote"
	OutcomeTeamLocked       = "team_locked"
	OutcomeFinalized        = "event_finalized"
	OutcomeAlreadyFinalized = "already_finalized"
	OutcomeReconciliation   = "reconciliation"
	OutcomeError            = "error"
)
