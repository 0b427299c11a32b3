// schema.go renders the database schema as a text block for the SQL
// generation prompt.
//
// The schema is static (two domain tables), so the rendering is built
// from a literal rather than introspection. It is regenerated per
// request because the tenant reminder block depends on the currently
// bound tenant.
package store

import "fmt"

// SchemaText returns the schema description handed to the model. When
// tenantID is non-empty an explicit filtering reminder is prepended so
// every generated statement carries the tenant filter.
func SchemaText(tenantID string) string {
	tenantNote := ""
	if tenantID != "" {
		tenantNote = fmt.Sprintf(`
IMPORTANT TENANT FILTERING:
- Current tenant_id: '%[1]s'
- ALWAYS add: WHERE tenant_id = '%[1]s' to filter by this specific client
- For projects table: WHERE tenant_id = '%[1]s'
- For project_units table: WHERE tenant_id = '%[1]s'
- For JOINs: Add the tenant_id filter to both tables or the result set
`, tenantID)
	}

	return fmt.Sprintf(`
DATABASE: real_estate listings
%s
TABLE: projects
Columns:
- project_id (TEXT PRIMARY KEY)
- tenant_id (TEXT NOT NULL) - Client/tenant identifier
- project_name (TEXT NOT NULL) - Name of the real estate project
- developer_name (TEXT NOT NULL) - Builder/developer name
- city (TEXT NOT NULL)
- description (TEXT)
- total_project_area_acres (DECIMAL)
- open_space_percentage (DECIMAL)
- number_of_towers (INTEGER)
- total_units_count (INTEGER)
- tower_structure_details (TEXT)
- is_block_wing_structure (BOOLEAN)
- rera_registration_number (TEXT)
- approval_body (TEXT)
- launch_date, sales_launch_date, construction_start_date (DATE)
- rera_possession_date, estimated_possession_date (DATE)
- construction_status (VARCHAR) - Values: 'Under Construction', 'Completed', 'Ready to Move'
- completion_percentage (DECIMAL)
- construction_technology (TEXT)
- stamp_duty_percentage, registration_charges_percentage (DECIMAL)
- construction_partners (TEXT)
- amenities, payment_plans, unique_selling_propositions (TEXT - JSON)
- schools, colleges, hospitals, it_parks_companies (TEXT)
- nearby_top_places, shopping_malls, health_fitness (TEXT)
- connecting_roads, metro_stations, bus_stands, airport_distance (TEXT)
- created_at, modified_at (TIMESTAMP)

TABLE: project_units
Columns:
- unit_id (TEXT PRIMARY KEY)
- project_id (TEXT - FOREIGN KEY to projects.project_id)
- tenant_id (TEXT NOT NULL) - Client/tenant identifier
- configuration_type (VARCHAR) - Examples: '2BHK', '3BHK', '4BHK', 'Villa'
- property_type (VARCHAR) - Examples: 'Apartment', 'Villa', 'Penthouse'
- built_up_area_sqft (DECIMAL)
- carpet_area_sqft (DECIMAL)
- base_price (DECIMAL) - Price in currency
- current_average_psf (DECIMAL) - Price per square foot
- market_psf (DECIMAL)
- view_premium_details, high_floor_premium_details, corner_unit_premium_details (TEXT)
- last_price_revision_date, next_planned_revision_date (DATE)
- last_price_change_percentage (DECIMAL)
- current_festive_offers (TEXT)
- created_at (TIMESTAMP)

IMPORTANT SQL GUIDELINES:
- Use JOIN to combine project and unit information
- For project queries: SELECT * FROM projects WHERE ...
- For unit queries: SELECT * FROM project_units WHERE ...
- For combined queries: SELECT p.project_name, u.* FROM projects p JOIN project_units u ON p.project_id = u.project_id WHERE ...
- IMPORTANT: Use LIKE for pattern matching on text fields (developer_name, project_name, client names)
  Example: WHERE developer_name LIKE '%%Casagrand%%' or WHERE project_name LIKE '%%Purva%%'
- Configuration type pattern matching: WHERE configuration_type LIKE '%%3BHK%%'
- Count projects: SELECT COUNT(*) FROM projects
- Count units: SELECT COUNT(*) FROM project_units
`, tenantNote)
}
