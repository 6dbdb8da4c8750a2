package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists audit entries
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Repository is the Postgres-backed audit store
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Append records one audit entry
func (r *Repository) Append(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("marshal audit data: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_entries (id, event_id, event_type, source, actor_id, data, occurred_at, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.EventID, entry.EventType, entry.Source, entry.ActorID.String(), data,
		entry.OccurredAt, entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// List returns the most recent audit entries, newest first
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, event_type, source, actor_id, data, occurred_at, recorded_at
		FROM audit_entries
		ORDER BY recorded_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var data []byte
		err := rows.Scan(
			&entry.ID, &entry.EventID, &entry.EventType, &entry.Source, &entry.ActorID,
			&data, &entry.OccurredAt, &entry.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(data) > 0 {
			_ = json.Unmarshal(data, &entry.Data)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
