package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smartparking/internal/entities"

	_ "github.com/lib/pq"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS web_sessions (
	id_hash    TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS web_sessions_expires_at_idx ON web_sessions (expires_at);
`

type PostgresSessionRepository struct {
	DB *sql.DB
}

// OpenPostgres opens and pings the database behind dsn.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// NewPostgresSessionRepository creates the sessions table when missing.
func NewPostgresSessionRepository(ctx context.Context, db *sql.DB) (*PostgresSessionRepository, error) {
	if _, err := db.ExecContext(ctx, sessionSchema); err != nil {
		return nil, fmt.Errorf("create web_sessions table: %w", err)
	}
	return &PostgresSessionRepository{DB: db}, nil
}

func (r *PostgresSessionRepository) Save(ctx context.Context, s *entities.Session) error {
	query := `
		INSERT INTO web_sessions (id_hash, token, email, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id_hash) DO UPDATE
		SET token = EXCLUDED.token, email = EXCLUDED.email, expires_at = EXCLUDED.expires_at`
	_, err := r.DB.ExecContext(ctx, query, sessionKey(s.ID), s.Token, s.Email, s.CreatedAt.UTC(), s.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) Get(ctx context.Context, id string) (*entities.Session, error) {
	s := entities.Session{ID: id}
	err := r.DB.QueryRowContext(ctx,
		`SELECT token, email, created_at, expires_at FROM web_sessions WHERE id_hash = $1`, sessionKey(id)).
		Scan(&s.Token, &s.Email, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	return &s, nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE id_hash = $1`, sessionKey(id)); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("error deleting expired sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting expired sessions: %w", err)
	}
	return n, nil
}
