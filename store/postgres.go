// postgres.go is the alternative backend for deployments that already
// keep listings in PostgreSQL.
//
// Uses a pgxpool connection pool (safe for concurrent access). When SSH
// is enabled the tunnel is established first and pgx connects to the
// local endpoint.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propchat/propchat/config"
)

// Postgres implements Executor over a pgx pool.
type Postgres struct {
	pool   *pgxpool.Pool
	tunnel *Tunnel
}

var _ Executor = (*Postgres)(nil)

// OpenPostgres connects to PostgreSQL, optionally through an SSH tunnel.
// The schema is expected to exist already; remote listing databases are
// provisioned outside this tool.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	p := &Postgres{}

	if cfg.SSH.Enabled {
		tunnel, err := NewTunnel(cfg.SSH, cfg.Host, cfg.Port)
		if err != nil {
			return nil, fmt.Errorf("ssh tunnel: %w", err)
		}
		localHost, localPort, err := tunnel.Start()
		if err != nil {
			return nil, fmt.Errorf("ssh tunnel start: %w", err)
		}
		p.tunnel = tunnel

		cfg.Host = localHost
		cfg.Port = localPort
	}

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		p.closeTunnel()
		return nil, fmt.Errorf("pgx connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		p.closeTunnel()
		return nil, fmt.Errorf("pgx ping: %w", err)
	}

	p.pool = pool
	return p, nil
}

// Execute runs an arbitrary SELECT and collects all rows as strings.
func (p *Postgres) Execute(ctx context.Context, sqlText string) (*QueryResult, error) {
	if err := ensureReadOnly(sqlText); err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, sqlText)
	if err != nil {
		return nil, execError(sqlText, err)
	}
	defer rows.Close()

	result := &QueryResult{}
	for _, fd := range rows.FieldDescriptions() {
		result.Columns = append(result.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, execError(sqlText, err)
		}
		row := make([]string, len(values))
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

// DistinctCities lists known city names.
func (p *Postgres) DistinctCities(ctx context.Context) ([]string, error) {
	return p.stringColumn(ctx, "SELECT DISTINCT city FROM projects ORDER BY city")
}

// DistinctDevelopers lists known developer names, per tenant when set.
func (p *Postgres) DistinctDevelopers(ctx context.Context, tenantID string) ([]string, error) {
	if tenantID != "" {
		return p.stringColumn(ctx,
			"SELECT DISTINCT developer_name FROM projects WHERE tenant_id = $1 ORDER BY developer_name", tenantID)
	}
	return p.stringColumn(ctx, "SELECT DISTINCT developer_name FROM projects ORDER BY developer_name")
}

// DistinctProjects lists known project names, per tenant when set.
func (p *Postgres) DistinctProjects(ctx context.Context, tenantID string) ([]string, error) {
	if tenantID != "" {
		return p.stringColumn(ctx,
			"SELECT DISTINCT project_name FROM projects WHERE tenant_id = $1 ORDER BY project_name", tenantID)
	}
	return p.stringColumn(ctx, "SELECT DISTINCT project_name FROM projects ORDER BY project_name")
}

func (p *Postgres) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := p.pool.Query(ctx, query, args...)
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
func (p *Postgres) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"projects", "project_units"} {
		var n int
		if err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the pool and the SSH tunnel.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	p.closeTunnel()
	return nil
}

func (p *Postgres) closeTunnel() {
	if p.tunnel != nil {
		p.tunnel.Stop()
	}
}
