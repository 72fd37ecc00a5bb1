package repository

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/pkg/database"
)

type PostgresVoteRepository struct {
	db *database.PostgresDB
}

func NewVoteRepository(db *database.PostgresDB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// UpsertVote stores a vote. The unique index on (event_id, voter_id,
// team_id, criterion_id) makes resubmission an update; concurrent writes to
// the same key serialize at the row, last writer wins.
func (r *PostgresVoteRepository) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, event_id, voter_id, team_id, criterion_id, score, voter_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id, voter_id, team_id, criterion_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		vote.ID,
		vote.EventID,
		vote.VoterID,
		vote.TeamID,
		vote.CriterionID,
		vote.Score,
		vote.VoterType,
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	return nil
}

// GetVotesForVoter gets all votes cast by a voter in an event
func (r *PostgresVoteRepository) GetVotesForVoter(ctx context.Context, eventID, voterID string) ([]domain.Vote, error) {
	query := `
		SELECT id, event_id, voter_id, team_id, criterion_id, score, voter_type, created_at, updated_at
		FROM votes
		WHERE event_id = $1 AND voter_id = $2
		ORDER BY created_at, id
	`

	rows, err := r.db.Pool.Query(ctx, query, eventID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes for voter: %w", err)
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		var vote domain.Vote
		err := rows.Scan(
			&vote.ID,
			&vote.EventID,
			&vote.VoterID,
			&vote.TeamID,
			&vote.CriterionID,
			&vote.Score,
			&vote.VoterType,
			&vote.CreatedAt,
			&vote.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, vote)
	}

	return votes, rows.Err()
}

// GetVoterTeam reports whether the voter has any vote in the event and which
// team it targets. Students can only ever hold votes for one team.
func (r *PostgresVoteRepository) GetVoterTeam(ctx context.Context, eventID, voterID string) (string, bool, error) {
	query := `
		SELECT team_id
		FROM votes
		WHERE event_id = $1 AND voter_id = $2
		ORDER BY created_at
		LIMIT 1
	`

	var teamID string
	err := r.db.Pool.QueryRow(ctx, query, eventID, voterID).Scan(&teamID)
	if isNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get voter team: %w", err)
	}

	return teamID, true, nil
}

// GetTeamTallies returns raw vote totals per team, split by rater bucket.
// Teams without votes appear with zero counts so the leaderboard lists them.
func (r *PostgresVoteRepository) GetTeamTallies(ctx context.Context, eventID string) ([]TeamTally, error) {
	query := `
		SELECT t.id, t.name,
		       COALESCE(SUM(v.score) FILTER (WHERE v.voter_type = 'jury'), 0),
		       COUNT(v.id) FILTER (WHERE v.voter_type = 'jury'),
		       COALESCE(SUM(v.score) FILTER (WHERE v.voter_type = 'student'), 0),
		       COUNT(v.id) FILTER (WHERE v.voter_type = 'student')
		FROM teams t
		LEFT JOIN votes v ON v.team_id = t.id AND v.event_id = $1
		GROUP BY t.id, t.name, t.created_at
		ORDER BY t.created_at, t.id
	`

	rows, err := r.db.Pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team tallies: %w", err)
	}
	defer rows.Close()

	var tallies []TeamTally
	for rows.Next() {
		var tally TeamTally
		err := rows.Scan(
			&tally.TeamID,
			&tally.TeamName,
			&tally.JuryTotal,
			&tally.JuryCount,
			&tally.PeerTotal,
			&tally.PeerCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team tally: %w", err)
		}
		tallies = append(tallies, tally)
	}

	return tallies, rows.Err()
}

// CountVotes gets the total number of vote rows in an event
func (r *PostgresVoteRepository) CountVotes(ctx context.Context, eventID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM votes WHERE event_id = $1`

	err := r.db.Pool.QueryRow(ctx, query, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return count, nil
}
