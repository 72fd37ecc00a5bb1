package repository

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/pkg/database"
)

type PostgresTeamRepository struct {
	db *database.PostgresDB
}

func NewTeamRepository(db *database.PostgresDB) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

// GetTeams gets all teams in registration order. Registration order is the
// leaderboard tie-break, so the ORDER BY here matters.
func (r *PostgresTeamRepository) GetTeams(ctx context.Context) ([]domain.Team, error) {
	query := `
		SELECT t.id, t.name, t.color, t.pre_points, t.badge_count, t.created_at,
		       COALESCE(array_agg(s.id) FILTER (WHERE s.id IS NOT NULL), '{}')
		FROM teams t
		LEFT JOIN students s ON s.team_id = t.id
		GROUP BY t.id, t.name, t.color, t.pre_points, t.badge_count, t.created_at
		ORDER BY t.created_at, t.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var team domain.Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Color,
			&team.PrePoints,
			&team.BadgeCount,
			&team.CreatedAt,
			&team.MemberIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetTeamByID gets a team by ID
func (r *PostgresTeamRepository) GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	var team domain.Team
	query := `
		SELECT id, name, color, pre_points, badge_count, created_at
		FROM teams
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, teamID).Scan(
		&team.ID,
		&team.Name,
		&team.Color,
		&team.PrePoints,
		&team.BadgeCount,
		&team.CreatedAt,
	)

	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// GetTeamMembers gets the members of a team
func (r *PostgresTeamRepository) GetTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
		SELECT id, name
		FROM students
		WHERE team_id = $1
		ORDER BY name, id
	`

	rows, err := r.db.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(&member.StudentID, &member.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}
