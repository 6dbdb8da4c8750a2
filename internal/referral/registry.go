package referral

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server driver
	"github.com/pannonhealth/lifeline/internal/shared/config"
)

// ClinicRegistry reads doctor records from the legacy clinic registry, a
// SQL Server database maintained outside this service. It participates in
// matching as one more source alongside the Postgres tables.
type ClinicRegistry struct {
	db    *sql.DB
	table string
}

// OpenClinicRegistry connects to the registry database
func OpenClinicRegistry(cfg config.RegistryConfig) (*ClinicRegistry, error) {
	connStr := fmt.Sprintf("server=%s;port=%d;database=%s;user id=%s;password=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password)
	if cfg.SSLMode != "disable" {
		connStr += ";encrypt=true;TrustServerCertificate=true"
	}

	db, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping registry database: %w", err)
	}

	return &ClinicRegistry{db: db, table: cfg.Table}, nil
}

// Name identifies the registry in logs
func (r *ClinicRegistry) Name() string {
	return "clinic_registry"
}

// FetchActive returns active-flagged registry rows
func (r *ClinicRegistry) FetchActive(ctx context.Context, limit int) ([]DoctorRecord, error) {
	query := fmt.Sprintf("SELECT TOP %d %s FROM %s WHERE is_active = 1", limit, doctorColumns, r.table)
	return r.query(ctx, query)
}

// FetchAll returns registry rows regardless of active flag
func (r *ClinicRegistry) FetchAll(ctx context.Context, limit int) ([]DoctorRecord, error) {
	query := fmt.Sprintf("SELECT TOP %d %s FROM %s", limit, doctorColumns, r.table)
	return r.query(ctx, query)
}

func (r *ClinicRegistry) query(ctx context.Context, query string) ([]DoctorRecord, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query clinic registry: %w", err)
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
			return nil, fmt.Errorf("scan clinic registry row: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Close closes the registry connection
func (r *ClinicRegistry) Close() error {
	return r.db.Close()
}
