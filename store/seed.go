// seed.go loads a hand-written sample dataset so the chatbot can be
// tried without a production import. Seeding runs offline, before
// serving traffic.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedProject is one sample listing row (subset of the projects table).
type SeedProject struct {
	ProjectID          string
	TenantID           string
	ProjectName        string
	DeveloperName      string
	City               string
	Description        string
	ConstructionStatus string
	TotalUnitsCount    int
	NumberOfTowers     int
	OpenSpacePct       float64
	AirportDistance    string
}

// SeedUnit is one sample unit row.
type SeedUnit struct {
	UnitID            string
	ProjectID         string
	TenantID          string
	ConfigurationType string
	PropertyType      string
	BuiltUpAreaSqft   float64
	BasePrice         float64
	CurrentAvgPSF     float64
	FestiveOffer      string
}

// SampleProjects is a representative slice of the production dataset.
var SampleProjects = []SeedProject{
	{
		ProjectID: "4ab03bc7", TenantID: "PURVA_001",
		ProjectName: "Purva Zenium", DeveloperName: "Puravankara Limited",
		City:        "Bangalore",
		Description: "Smart homes with BluNex technology near Hebbal",
		ConstructionStatus: "Under Construction",
		TotalUnitsCount:    1153, NumberOfTowers: 8, OpenSpacePct: 78.5,
		AirportDistance: "18 km",
	},
	{
		ProjectID: "733be9d8", TenantID: "PURVA_001",
		ProjectName: "Purva Atmosphere", DeveloperName: "Puravankara Limited",
		City:        "Bangalore",
		Description: "Themed high-rise towers in Thanisandra",
		ConstructionStatus: "Under Construction",
		TotalUnitsCount:    1448, NumberOfTowers: 10, OpenSpacePct: 80,
		AirportDistance: "22 km",
	},
	{
		ProjectID: "8ba3effd", TenantID: "PURVA_001",
		ProjectName: "Purva Tiara", DeveloperName: "Puravankara Limited",
		City:        "Bangalore",
		Description: "Boutique ready-to-move residences off Bannerghatta Road",
		ConstructionStatus: "Ready to Move",
		TotalUnitsCount:    226, NumberOfTowers: 2, OpenSpacePct: 65,
		AirportDistance: "42 km",
	},
	{
		ProjectID: "cg-cloud98", TenantID: "TM_TEAM_001",
		ProjectName: "Casagrand Cloud 98", DeveloperName: "Casagrand Builder Private Limited",
		City:        "Chennai",
		Description: "Sky villas with private terraces in Perumbakkam",
		ConstructionStatus: "Under Construction",
		TotalUnitsCount:    720, NumberOfTowers: 6, OpenSpacePct: 72,
		AirportDistance: "16 km",
	},
	{
		ProjectID: "cg-athens", TenantID: "TM_TEAM_001",
		ProjectName: "Casagrand Athens", DeveloperName: "Casagrand Builder Private Limited",
		City:        "Chennai",
		Description: "Greek themed community at Mogappair",
		ConstructionStatus: "Completed",
		TotalUnitsCount:    418, NumberOfTowers: 4, OpenSpacePct: 70,
		AirportDistance: "19 km",
	},
	{
		ProjectID: "cg-kochi01", TenantID: "TM_TEAM_001",
		ProjectName: "Casagrand Majestica", DeveloperName: "Casagrand Builder Private Limited",
		City:        "Kochi",
		Description: "Waterfront apartments on Marine Drive",
		ConstructionStatus: "Under Construction",
		TotalUnitsCount:    310, NumberOfTowers: 3, OpenSpacePct: 60,
		AirportDistance: "28 km",
	},
}

// SampleUnits covers the common configurations across the sample
// projects.
var SampleUnits = []SeedUnit{
	{UnitID: "u-zen-2b", ProjectID: "4ab03bc7", TenantID: "PURVA_001",
		ConfigurationType: "2BHK", PropertyType: "Apartment",
		BuiltUpAreaSqft: 1184, BasePrice: 8900000, CurrentAvgPSF: 7517},
	{UnitID: "u-zen-3b", ProjectID: "4ab03bc7", TenantID: "PURVA_001",
		ConfigurationType: "3BHK", PropertyType: "Apartment",
		BuiltUpAreaSqft: 1514, BasePrice: 11800000, CurrentAvgPSF: 7794,
		FestiveOffer: "No floor rise charges this quarter"},
	{UnitID: "u-atm-3b", ProjectID: "733be9d8", TenantID: "PURVA_001",
		ConfigurationType: "3BHK", PropertyType: "Apartment",
		BuiltUpAreaSqft: 1665, BasePrice: 13900000, CurrentAvgPSF: 8348},
	{UnitID: "u-tia-3b", ProjectID: "8ba3effd", TenantID: "PURVA_001",
		ConfigurationType: "3BHK", PropertyType: "Apartment",
		BuiltUpAreaSqft: 1720, BasePrice: 14500000, CurrentAvgPSF: 8430},
	{UnitID: "u-c98-4b", ProjectID: "cg-cloud98", TenantID: "TM_TEAM_001",
		ConfigurationType: "4BHK", PropertyType: "Penthouse",
		BuiltUpAreaSqft: 2450, BasePrice: 21500000, CurrentAvgPSF: 8776,
		FestiveOffer: "Modular kitchen included"},
	{UnitID: "u-c98-2b", ProjectID: "cg-cloud98", TenantID: "TM_TEAM_001",
		ConfigurationType: "2BHK", PropertyType: "Apartment",
		BuiltUpAreaSqft: 1050, BasePrice: 7400000, CurrentAvgPSF: 7048},
	{UnitID: "u-ath-3b", ProjectID: "cg-athens", TenantID: "TM_TEAM_001",
		ConfigurationType: "3BHK", PropertyType: "Apartment",
		BuiltUpAreaSqft: 1390, BasePrice: 9800000, CurrentAvgPSF: 7050},
	{UnitID: "u-koc-vl", ProjectID: "cg-kochi01", TenantID: "TM_TEAM_001",
		ConfigurationType: "Villa", PropertyType: "Villa",
		BuiltUpAreaSqft: 3100, BasePrice: 32000000, CurrentAvgPSF: 10322},
}

// Seed inserts the sample dataset into a SQLite database. Existing rows
// with the same primary keys are replaced, so seeding is idempotent.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, p := range SampleProjects {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO projects (
				project_id, tenant_id, project_name, developer_name, city,
				description, construction_status, total_units_count,
				number_of_towers, open_space_percentage, airport_distance
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ProjectID, p.TenantID, p.ProjectName, p.DeveloperName, p.City,
			p.Description, p.ConstructionStatus, p.TotalUnitsCount,
			p.NumberOfTowers, p.OpenSpacePct, p.AirportDistance)
		if err != nil {
			return fmt.Errorf("seed project %s: %w", p.ProjectID, err)
		}
	}

	for _, u := range SampleUnits {
		offer := sql.NullString{String: u.FestiveOffer, Valid: u.FestiveOffer != ""}
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO project_units (
				unit_id, project_id, tenant_id, configuration_type,
				property_type, built_up_area_sqft, base_price,
				current_average_psf, current_festive_offers
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.UnitID, u.ProjectID, u.TenantID, u.ConfigurationType,
			u.PropertyType, u.BuiltUpAreaSqft, u.BasePrice,
			u.CurrentAvgPSF, offer)
		if err != nil {
			return fmt.Errorf("seed unit %s: %w", u.UnitID, err)
		}
	}

	return tx.Commit()
}
