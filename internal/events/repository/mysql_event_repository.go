package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/events/domain"
)

// MySQLEventRepository handles event persistence for MySQL.
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQLEventRepository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}

const mysqlEventColumns = `sequence, id, event_type, payload, signature, status, retries, last_error,
	processed_at, created_at, updated_at`

// Create appends an event and stores the assigned sequence on it.
func (r *MySQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	// Convert UUID to bytes for MySQL BINARY(16)
	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `INSERT INTO events (id, event_type, payload, signature, status, retries, last_error, processed_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(ctx, query, idBytes, event.EventType, event.Payload, event.Signature,
		event.Status, event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt, event.CreatedAt)
	if err != nil {
		return err
	}

	event.Sequence, err = result.LastInsertId()
	return err
}

// GetPending retrieves pending events in sequence order, skipping rows locked by another dispatcher.
func (r *MySQLEventRepository) GetPending(ctx context.Context, limit int) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlEventColumns + `
			  FROM events
			  WHERE status = ?
			  ORDER BY sequence ASC
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	return scanMySQLEvents(rows)
}

// List returns events in sequence order.
func (r *MySQLEventRepository) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlEventColumns + `
			  FROM events
			  ORDER BY sequence ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanMySQLEvents(rows)
}

// Update stores the delivery status of an event.
func (r *MySQLEventRepository) Update(ctx context.Context, event *domain.Event) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `UPDATE events
			  SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = NOW(6)
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, event.Status, event.Retries, event.LastError,
		event.ProcessedAt, idBytes)
	return err
}

func scanMySQLEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		var idBytes []byte

		if err := rows.Scan(&event.Sequence, &idBytes, &event.EventType, &event.Payload, &event.Signature,
			&event.Status, &event.Retries, &event.LastError, &event.ProcessedAt, &event.CreatedAt,
			&event.UpdatedAt); err != nil {
			return nil, err
		}

		// Convert bytes back to UUID
		if err := event.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, err
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
