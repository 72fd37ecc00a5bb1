package repository

import (
	"context"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/pkg/database"
)

type PostgresCriterionRepository struct {
	db *database.PostgresDB
}

func NewCriterionRepository(db *database.PostgresDB) *PostgresCriterionRepository {
	return &PostgresCriterionRepository{db: db}
}

// ListByEvent gets an event's criteria ordered by position
func (r *PostgresCriterionRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Criterion, error) {
	query := `
		SELECT id, event_id, name, max_score, position
		FROM criteria
		WHERE event_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.Pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	defer rows.Close()

	var criteria []domain.Criterion
	for rows.Next() {
		var criterion domain.Criterion
		err := rows.Scan(
			&criterion.ID,
			&criterion.EventID,
			&criterion.Name,
			&criterion.MaxScore,
			&criterion.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan criterion: %w", err)
		}
		criteria = append(criteria, criterion)
	}

	return criteria, rows.Err()
}

// GetByID gets one criterion, nil if absent
func (r *PostgresCriterionRepository) GetByID(ctx context.Context, eventID, criterionID string) (*domain.Criterion, error) {
	var criterion domain.Criterion
	query := `
		SELECT id, event_id, name, max_score, position
		FROM criteria
		WHERE event_id = $1 AND id = $2
	`

	err := r.db.Pool.QueryRow(ctx, query, eventID, criterionID).Scan(
		&criterion.ID,
		&criterion.EventID,
		&criterion.Name,
		&criterion.MaxScore,
		&criterion.Position,
	)

	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}

	return &criterion, nil
}
