package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSeeded(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, Seed(context.Background(), s.DB()))
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	counts, err := s.TableCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, counts["projects"])
	assert.Equal(t, 0, counts["project_units"])
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openSeeded(t)
	require.NoError(t, Seed(context.Background(), s.DB()))

	counts, err := s.TableCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(SampleProjects), counts["projects"])
	assert.Equal(t, len(SampleUnits), counts["project_units"])
}

func TestExecuteSelect(t *testing.T) {
	s := openSeeded(t)

	res, err := s.Execute(context.Background(),
		"SELECT project_name, city FROM projects WHERE UPPER(city) LIKE '%CHENNAI%' ORDER BY project_name")
	require.NoError(t, err)

	assert.Equal(t, []string{"project_name", "city"}, res.Columns)
	require.Equal(t, 2, res.RowCount)
	assert.Equal(t, []string{"Casagrand Athens", "Chennai"}, res.Rows[0])
	assert.Equal(t, []string{"Casagrand Cloud 98", "Chennai"}, res.Rows[1])
}

func TestExecuteJoin(t *testing.T) {
	s := openSeeded(t)

	res, err := s.Execute(context.Background(), `
		SELECT p.project_name, u.configuration_type
		FROM projects p JOIN project_units u ON p.project_id = u.project_id
		WHERE UPPER(u.configuration_type) LIKE '%VILLA%'`)
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, "Casagrand Majestica", res.Rows[0][0])
}

func TestExecuteRendersNull(t *testing.T) {
	s := openSeeded(t)

	res, err := s.Execute(context.Background(),
		"SELECT current_festive_offers FROM project_units WHERE unit_id = 'u-zen-2b'")
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount)
	assert.Equal(t, "NULL", res.Rows[0][0])
}

func TestExecuteSyntaxErrorIsExecutionError(t *testing.T) {
	s := openSeeded(t)

	_, err := s.Execute(context.Background(), "SELECT bogus_column FROM projects")
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "SELECT bogus_column FROM projects", execErr.SQL)
	assert.Contains(t, execErr.Message, "bogus_column")
}

func TestExecuteRejectsWrites(t *testing.T) {
	s := openSeeded(t)

	cases := []string{
		"DELETE FROM projects",
		"UPDATE projects SET city = 'Nowhere'",
		"INSERT INTO projects (project_id, tenant_id, project_name, developer_name, city) VALUES ('x','y','z','w','v')",
		"DROP TABLE projects",
		"SELECT 1; DELETE FROM projects",
		"-- sneaky\nDELETE FROM projects",
		"",
	}
	for _, stmt := range cases {
		_, err := s.Execute(context.Background(), stmt)
		var execErr *ExecutionError
		require.True(t, errors.As(err, &execErr), "statement %q must be rejected", stmt)
	}

	// Nothing was deleted.
	counts, err := s.TableCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(SampleProjects), counts["projects"])
}

func TestExecuteAllowsWithAndComments(t *testing.T) {
	s := openSeeded(t)

	for _, stmt := range []string{
		"WITH c AS (SELECT city FROM projects) SELECT COUNT(*) FROM c",
		"-- count\nSELECT COUNT(*) FROM projects",
		"/* count */ SELECT COUNT(*) FROM projects;",
	} {
		_, err := s.Execute(context.Background(), stmt)
		assert.NoError(t, err, "statement %q must be allowed", stmt)
	}
}

func TestDistinctListsHonorTenant(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	cities, err := s.DistinctCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bangalore", "Chennai", "Kochi"}, cities)

	devs, err := s.DistinctDevelopers(ctx, "PURVA_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"Puravankara Limited"}, devs)

	devs, err = s.DistinctDevelopers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, devs, 2)

	projects, err := s.DistinctProjects(ctx, "TM_TEAM_001")
	require.NoError(t, err)
	assert.Equal(t, []string{"Casagrand Athens", "Casagrand Cloud 98", "Casagrand Majestica"}, projects)
}

func TestImportCSV(t *testing.T) {
	s := openSeeded(t)

	path := filepath.Join(t.TempDir(), "projects.csv")
	data := "project_id,tenant_id,project_name,developer_name,city,description\n" +
		"imp-1,TM_TEAM_001,Casagrand Utopia,Casagrand Builder Private Limited,Coimbatore,\n" +
		"imp-2,PURVA_001,Purva Meraki,Puravankara Limited,Bangalore,Central Bangalore homes\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	n, err := ImportCSV(context.Background(), s.DB(), "projects", path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Empty cells become NULL.
	res, err := s.Execute(context.Background(),
		"SELECT description FROM projects WHERE project_id = 'imp-1'")
	require.NoError(t, err)
	assert.Equal(t, "NULL", res.Rows[0][0])

	cities, err := s.DistinctCities(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cities, "Coimbatore")
}

func TestImportCSVRejectsUnknownColumn(t *testing.T) {
	s := openSeeded(t)

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("project_id,nope\nx,y\n"), 0600))

	_, err := ImportCSV(context.Background(), s.DB(), "projects", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestImportCSVRejectsUnknownTable(t *testing.T) {
	s := openSeeded(t)
	_, err := ImportCSV(context.Background(), s.DB(), "users", "/nonexistent.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown import table")
}
