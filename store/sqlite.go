// sqlite.go is the default embedded backend.
//
// Uses modernc.org/sqlite (pure Go, no cgo) through database/sql, with
// WAL mode so the serving path can run concurrent readers while seeding
// and imports run offline.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite implements Executor over an embedded database file.
type SQLite struct {
	db *sql.DB
}

var _ Executor = (*SQLite)(nil)

// OpenSQLite opens (creating if necessary) the database at path and
// bootstraps the schema. Pass ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = path + "?_journal=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == ":memory:" {
		// Every pool connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		project_id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,

		project_name TEXT NOT NULL,
		developer_name TEXT NOT NULL,
		city TEXT NOT NULL,
		description TEXT,

		total_project_area_acres DECIMAL(10, 2),
		open_space_percentage DECIMAL(5, 2),
		number_of_towers INTEGER,
		total_units_count INTEGER,
		tower_structure_details TEXT,
		is_block_wing_structure BOOLEAN,

		rera_registration_number TEXT,
		approval_body TEXT,
		launch_date DATE,
		sales_launch_date DATE,
		construction_start_date DATE,
		rera_possession_date DATE,
		estimated_possession_date DATE,

		construction_status VARCHAR(50),
		completion_percentage DECIMAL(5, 2),
		construction_technology TEXT,

		stamp_duty_percentage DECIMAL(5, 2),
		registration_charges_percentage DECIMAL(5, 2),
		construction_partners TEXT,

		amenities TEXT,
		payment_plans TEXT,
		unique_selling_propositions TEXT,
		undivided_share_land_details TEXT,
		project_theme TEXT,
		schools TEXT,
		colleges TEXT,
		hospitals TEXT,
		it_parks_companies TEXT,
		nearby_top_places TEXT,
		shopping_malls TEXT,
		health_fitness TEXT,
		connecting_roads TEXT,
		metro_stations TEXT,
		bus_stands TEXT,
		airport_distance TEXT,

		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_projects_tenant ON projects(tenant_id);

	CREATE TABLE IF NOT EXISTS project_units (
		unit_id TEXT PRIMARY KEY,
		project_id TEXT REFERENCES projects(project_id) ON DELETE CASCADE,
		tenant_id TEXT NOT NULL,

		configuration_type VARCHAR(50),
		property_type VARCHAR(50),

		built_up_area_sqft DECIMAL(10, 2),
		carpet_area_sqft DECIMAL(10, 2),

		base_price DECIMAL(15, 2),
		current_average_psf DECIMAL(10, 2),
		market_psf DECIMAL(10, 2),

		view_premium_details TEXT,
		high_floor_premium_details TEXT,
		corner_unit_premium_details TEXT,

		last_price_revision_date DATE,
		last_price_change_percentage DECIMAL(5, 2),
		next_planned_revision_date DATE,
		current_festive_offers TEXT,

		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_units_project ON project_units(project_id);
	CREATE INDEX IF NOT EXISTS idx_units_tenant ON project_units(tenant_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Execute runs an arbitrary SELECT and collects all rows as strings.
func (s *SQLite) Execute(ctx context.Context, sqlText string) (*QueryResult, error) {
	if err := ensureReadOnly(sqlText); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, execError(sqlText, err)
	}
	defer rows.Close()

	return collectRows(sqlText, rows)
}

// collectRows renders a generic *sql.Rows into a QueryResult.
func collectRows(sqlText string, rows *sql.Rows) (*QueryResult, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, execError(sqlText, err)
	}

	result := &QueryResult{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, execError(sqlText, err)
		}

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = renderValue(v)
		}
		result.Rows = append(result.Rows, row)
		result.RowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, execError(sqlText, err)
	}
	return result, nil
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// DistinctCities lists known city names.
func (s *SQLite) DistinctCities(ctx context.Context) ([]string, error) {
	return s.stringColumn(ctx, "SELECT DISTINCT city FROM projects ORDER BY city")
}

// DistinctDevelopers lists known developer names, per tenant when set.
func (s *SQLite) DistinctDevelopers(ctx context.Context, tenantID string) ([]string, error) {
	if tenantID != "" {
		return s.stringColumn(ctx,
			"SELECT DISTINCT developer_name FROM projects WHERE tenant_id = ? ORDER BY developer_name", tenantID)
	}
	return s.stringColumn(ctx, "SELECT DISTINCT developer_name FROM projects ORDER BY developer_name")
}

// DistinctProjects lists known project names, per tenant when set.
func (s *SQLite) DistinctProjects(ctx context.Context, tenantID string) ([]string, error) {
	if tenantID != "" {
		return s.stringColumn(ctx,
			"SELECT DISTINCT project_name FROM projects WHERE tenant_id = ? ORDER BY project_name", tenantID)
	}
	return s.stringColumn(ctx, "SELECT DISTINCT project_name FROM projects ORDER BY project_name")
}

func (s *SQLite) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// TableCounts returns row counts for the two domain tables.
func (s *SQLite) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"projects", "project_units"} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// Ping verifies database connectivity.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// DB exposes the handle for seeding and imports.
func (s *SQLite) DB() *sql.DB { return s.db }
