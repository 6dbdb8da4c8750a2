package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pannonhealth/lifeline/internal/shared/types"
)

// Store persists profile attributes as scoped key/value rows. The key is
// "<attribute>:<userID>", so each user owns one latest value per attribute
// and writes are latest-wins upserts.
type Store interface {
	Get(ctx context.Context, attribute string, userID types.ID) (string, bool, error)
	Upsert(ctx context.Context, attribute string, userID types.ID, value string) error
}

// Repository is the Postgres-backed profile store
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new profile repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scopedKey(attribute string, userID types.ID) string {
	return fmt.Sprintf("%s:%s", attribute, userID)
}

// Get reads the latest value for one user's attribute. The second return
// value reports presence; absence is not an error.
func (r *Repository) Get(ctx context.Context, attribute string, userID types.ID) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT attribute_value FROM profile_attributes WHERE attribute_name = $1`,
		scopedKey(attribute, userID),
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get profile attribute: %w", err)
	}
	return value, true, nil
}

// Upsert writes the latest value for one user's attribute
func (r *Repository) Upsert(ctx context.Context, attribute string, userID types.ID, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profile_attributes (attribute_name, attribute_value, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (attribute_name)
		DO UPDATE SET attribute_value = EXCLUDED.attribute_value, updated_at = NOW()`,
		scopedKey(attribute, userID), value,
	)
	if err != nil {
		return fmt.Errorf("upsert profile attribute: %w", err)
	}
	return nil
}
