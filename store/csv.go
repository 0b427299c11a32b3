// csv.go imports listing spreadsheets exported as CSV.
//
// The first row must be a header whose column names match the target
// table's columns. Unknown columns are rejected up front rather than
// silently dropped, since a typo in a header would otherwise lose data.
// Imports run offline, before serving traffic.
package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// importTables lists the valid CSV import targets and their columns.
var importTables = map[string]map[string]bool{
	"projects": columnSet(
		"project_id", "tenant_id", "project_name", "developer_name", "city",
		"description", "total_project_area_acres", "open_space_percentage",
		"number_of_towers", "total_units_count", "tower_structure_details",
		"is_block_wing_structure", "rera_registration_number", "approval_body",
		"launch_date", "sales_launch_date", "construction_start_date",
		"rera_possession_date", "estimated_possession_date",
		"construction_status", "completion_percentage",
		"construction_technology", "stamp_duty_percentage",
		"registration_charges_percentage", "construction_partners",
		"amenities", "payment_plans", "unique_selling_propositions",
		"undivided_share_land_details", "project_theme", "schools", "colleges",
		"hospitals", "it_parks_companies", "nearby_top_places",
		"shopping_malls", "health_fitness", "connecting_roads",
		"metro_stations", "bus_stands", "airport_distance",
	),
	"project_units": columnSet(
		"unit_id", "project_id", "tenant_id", "configuration_type",
		"property_type", "built_up_area_sqft", "carpet_area_sqft",
		"base_price", "current_average_psf", "market_psf",
		"view_premium_details", "high_floor_premium_details",
		"corner_unit_premium_details", "last_price_revision_date",
		"last_price_change_percentage", "next_planned_revision_date",
		"current_festive_offers",
	),
}

func columnSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// ImportCSV loads rows from path into table ("projects" or
// "project_units"). Returns the number of rows inserted.
func ImportCSV(ctx context.Context, db *sql.DB, table, path string) (int, error) {
	valid, ok := importTables[table]
	if !ok {
		return 0, fmt.Errorf("unknown import table %q (expected projects or project_units)", table)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
		if !valid[header[i]] {
			return 0, fmt.Errorf("column %q does not exist in table %s", header[i], table)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	insert := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(header, ", "), placeholders)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row %d: %w", count+2, err)
		}

		args := make([]any, len(record))
		for i, v := range record {
			if v == "" {
				args[i] = nil
			} else {
				args[i] = v
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", count+2, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}
