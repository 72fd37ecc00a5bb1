package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hackboard/internal/domain"
	"hackboard/pkg/database"
)

type PostgresFinalizationRepository struct {
	db *database.PostgresDB
}

func NewFinalizationRepository(db *database.PostgresDB) *PostgresFinalizationRepository {
	return &PostgresFinalizationRepository{db: db}
}

// Get retrieves the finalization record for an event, nil if still open
func (r *PostgresFinalizationRepository) Get(ctx context.Context, eventID string) (*domain.FinalizationRecord, error) {
	var record domain.FinalizationRecord
	var resultsJSON []byte
	query := `
		SELECT event_id, label, finalized_at, results_json
		FROM finalizations
		WHERE event_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, eventID).Scan(
		&record.EventID,
		&record.Label,
		&record.FinalizedAt,
		&resultsJSON,
	)

	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finalization: %w", err)
	}

	if err := json.Unmarshal(resultsJSON, &record.Results); err != nil {
		return nil, fmt.Errorf("failed to decode finalization results: %w", err)
	}

	return &record, nil
}

// Create atomically inserts the finalization record. The primary key on
// event_id is the exactly-once guard: when two callers race, one insert
// lands and the other sees zero rows affected. This survives restarts and
// multi-instance deployments, unlike an in-process flag.
func (r *PostgresFinalizationRepository) Create(ctx context.Context, record *domain.FinalizationRecord) error {
	resultsJSON, err := json.Marshal(record.Results)
	if err != nil {
		return fmt.Errorf("failed to encode finalization results: %w", err)
	}

	query := `
		INSERT INTO finalizations (event_id, label, finalized_at, results_json)
		VALUES ($1, $2, now(), $3)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING finalized_at
	`

	err = r.db.Pool.QueryRow(ctx, query, record.EventID, record.Label, resultsJSON).Scan(&record.FinalizedAt)
	if isNoRows(err) {
		// ON CONFLICT DO NOTHING returned no row: someone else won the race.
		return domain.ErrAlreadyFinalized
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyFinalized
		}
		return fmt.Errorf("failed to create finalization: %w", err)
	}

	return nil
}
