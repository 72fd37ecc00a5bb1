package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/migrate [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("All tables dropped")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("All tables created")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("Seed data inserted")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`DROP TABLE IF EXISTS point_ledger`,
		`DROP TABLE IF EXISTS finalizations`,
		`DROP TABLE IF EXISTS jury_members`,
		`DROP TABLE IF EXISTS votes`,
		`DROP TABLE IF EXISTS criteria`,
		`DROP TABLE IF EXISTS students`,
		`DROP TABLE IF EXISTS teams`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			color       TEXT NOT NULL DEFAULT '',
			pre_points  INTEGER NOT NULL DEFAULT 0,
			badge_count INTEGER NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			team_id    TEXT REFERENCES teams(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS criteria (
			id        TEXT NOT NULL,
			event_id  TEXT NOT NULL,
			name      TEXT NOT NULL,
			max_score INTEGER NOT NULL,
			position  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (event_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id           TEXT PRIMARY KEY,
			event_id     TEXT NOT NULL,
			voter_id     TEXT NOT NULL,
			team_id      TEXT NOT NULL REFERENCES teams(id),
			criterion_id TEXT NOT NULL,
			score        INTEGER NOT NULL CHECK (score >= 1),
			voter_type   TEXT NOT NULL CHECK (voter_type IN ('student', 'jury')),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (event_id, voter_id, team_id, criterion_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_event_team ON votes (event_id, team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_event_voter ON votes (event_id, voter_id)`,
		`CREATE TABLE IF NOT EXISTS jury_members (
			id         TEXT PRIMARY KEY,
			event_id   TEXT NOT NULL,
			name       TEXT NOT NULL,
			role       TEXT NOT NULL DEFAULT '',
			icon       TEXT NOT NULL DEFAULT '',
			added_by   TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jury_members_event ON jury_members (event_id)`,
		`CREATE TABLE IF NOT EXISTS finalizations (
			event_id     TEXT PRIMARY KEY,
			label        TEXT NOT NULL,
			finalized_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			results_json JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS point_ledger (
			id         BIGSERIAL PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id),
			event_id   TEXT NOT NULL,
			points     INTEGER NOT NULL,
			reason     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_point_ledger_student ON point_ledger (student_id)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec failed: %w", err)
		}
	}
	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	statements := []string{
		`INSERT INTO teams (id, name, color, pre_points, badge_count) VALUES
			('team-rocket',  'Rocket',  '#e74c3c', 340, 3),
			('team-nebula',  'Nebula',  '#8e44ad', 510, 5),
			('team-quasar',  'Quasar',  '#2980b9', 280, 2),
			('team-pulsar',  'Pulsar',  '#27ae60', 455, 4)
		ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO students (id, name, team_id) VALUES
			('s-01', 'Alice',  'team-rocket'),
			('s-02', 'Bryn',   'team-rocket'),
			('s-03', 'Carol',  'team-rocket'),
			('s-04', 'Dmitri', 'team-nebula'),
			('s-05', 'Elena',  'team-nebula'),
			('s-06', 'Farid',  'team-nebula'),
			('s-07', 'Grete',  'team-quasar'),
			('s-08', 'Hiro',   'team-quasar'),
			('s-09', 'Ines',   'team-pulsar'),
			('s-10', 'Jonas',  'team-pulsar')
		ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO criteria (id, event_id, name, max_score, position) VALUES
			('innovation',    'hack-2026', 'Innovation',          5, 1),
			('feasibility',   'hack-2026', 'Feasibility',         5, 2),
			('execution',     'hack-2026', 'Execution',           5, 3),
			('presentation',  'hack-2026', 'Presentation',        5, 4),
			('teamwork',      'hack-2026', 'Teamwork',            5, 5)
		ON CONFLICT (event_id, id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}
	return nil
}
