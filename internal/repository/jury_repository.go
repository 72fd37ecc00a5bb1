package repository

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/pkg/database"
)

type PostgresJuryRepository struct {
	db *database.PostgresDB
}

func NewJuryRepository(db *database.PostgresDB) *PostgresJuryRepository {
	return &PostgresJuryRepository{db: db}
}

// Add inserts a jury roster entry
func (r *PostgresJuryRepository) Add(ctx context.Context, member *domain.JuryMember) error {
	query := `
		INSERT INTO jury_members (id, event_id, name, role, icon, added_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		member.ID,
		member.EventID,
		member.Name,
		member.Role,
		member.Icon,
		member.AddedBy,
	).Scan(&member.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to add jury member: %w", err)
	}

	return nil
}

// Remove deletes a jury roster entry. Votes cast under that voter identity
// are untouched; votes are keyed by voter_id, not roster membership.
func (r *PostgresJuryRepository) Remove(ctx context.Context, juryID string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM jury_members WHERE id = $1`, juryID)
	if err != nil {
		return fmt.Errorf("failed to remove jury member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJuryMemberNotFound
	}

	return nil
}

// ListByEvent gets the jury roster for an event
func (r *PostgresJuryRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.JuryMember, error) {
	query := `
		SELECT id, event_id, name, role, icon, added_by, created_at
		FROM jury_members
		WHERE event_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jury members: %w", err)
	}
	defer rows.Close()

	var members []domain.JuryMember
	for rows.Next() {
		var member domain.JuryMember
		err := rows.Scan(
			&member.ID,
			&member.EventID,
			&member.Name,
			&member.Role,
			&member.Icon,
			&member.AddedBy,
			&member.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jury member: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}
