package referral

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// candidateTables are the Postgres collections holding doctor records.
// They share the same column shape and are consulted as a union.
var candidateTables = []string{"doctors", "doctor_recommendations", "specialists"}

const doctorColumns = "id, full_name, specialty, clinic_name, city, country, website_url, booking_url"

// TableSource reads doctor records from one Postgres table
type TableSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewTableSources creates a source per candidate table
func NewTableSources(pool *pgxpool.Pool) []Source {
	sources := make([]Source, 0, len(candidateTables))
	for _, table := range candidateTables {
		sources = append(sources, &TableSource{pool: pool, table: table})
	}
	return sources
}

// Name returns the table name
func (s *TableSource) Name() string {
	return s.table
}

// FetchActive returns active-flagged rows from the table
func (s *TableSource) FetchActive(ctx context.Context, limit int) ([]DoctorRecord, error) {
	// table names come from the fixed candidateTables list, never from input
	query := fmt.Sprintf("SELECT %s FROM %s WHERE is_active = TRUE LIMIT $1", doctorColumns, s.table)
	return s.query(ctx, query, limit)
}

// FetchAll returns rows from the table regardless of active flag
func (s *TableSource) FetchAll(ctx context.Context, limit int) ([]DoctorRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT $1", doctorColumns, s.table)
	return s.query(ctx, query, limit)
}

func (s *TableSource) query(ctx context.Context, query string, limit int) ([]DoctorRecord, error) {
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var records []DoctorRecord
	for rows.Next() {
		var record DoctorRecord
		err := rows.Scan(
			&record.ID, &record.FullName, &record.Specialty, &record.ClinicName,
			&record.City, &record.Country, &record.WebsiteURL, &record.BookingURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.table, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
