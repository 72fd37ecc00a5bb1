package repository

import (
	"context"
	"fmt"

	"hackboard/pkg/database"
)

type PostgresLedgerRepository struct {
	db *database.PostgresDB
}

func NewLedgerRepository(db *database.PostgresDB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

// AddPoints appends a ledger entry for a student. The ledger is append-only;
// balances are sums over entries.
func (r *PostgresLedgerRepository) AddPoints(ctx context.Context, studentID, eventID string, points int, reason string) error {
	query := `
		INSERT INTO point_ledger (student_id, event_id, points, reason)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Pool.Exec(ctx, query, studentID, eventID, points, reason); err != nil {
		return fmt.Errorf("failed to add ledger entry for student %s: %w", studentID, err)
	}

	return nil
}
