// Package repository provides data persistence implementations for the registry event log.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/events/domain"
)

// PostgreSQLEventRepository handles event persistence for PostgreSQL.
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}

const postgresEventColumns = `sequence, id, event_type, payload, signature, status, retries, last_error,
	processed_at, created_at, updated_at`

// Create appends an event and stores the assigned sequence on it.
func (r *PostgreSQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO events (id, event_type, payload, signature, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			  RETURNING sequence`

	return querier.QueryRowContext(ctx, query, event.ID, event.EventType, event.Payload, event.Signature,
		event.Status, event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt).Scan(&event.Sequence)
}

// GetPending retrieves pending events in sequence order, skipping rows locked by another dispatcher.
func (r *PostgreSQLEventRepository) GetPending(ctx context.Context, limit int) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresEventColumns + `
			  FROM events
			  WHERE status = $1
			  ORDER BY sequence ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	return scanPostgresEvents(rows)
}

// List returns events in sequence order.
func (r *PostgreSQLEventRepository) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresEventColumns + `
			  FROM events
			  ORDER BY sequence ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPostgresEvents(rows)
}

// Update stores the delivery status of an event.
func (r *PostgreSQLEventRepository) Update(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE events
			  SET status = $1, retries = $2, last_error = $3, processed_at = $4, updated_at = NOW()
			  WHERE id = $5`

	_, err := querier.ExecContext(ctx, query, event.Status, event.Retries, event.LastError,
		event.ProcessedAt, event.ID)
	return err
}

func scanPostgresEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(&event.Sequence, &event.ID, &event.EventType, &event.Payload, &event.Signature,
			&event.Status, &event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt,
			&event.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
