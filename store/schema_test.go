package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaTextWithoutTenant(t *testing.T) {
	text := SchemaText("")

	assert.Contains(t, text, "TABLE: projects")
	assert.Contains(t, text, "TABLE: project_units")
	assert.Contains(t, text, "configuration_type")
	assert.NotContains(t, text, "IMPORTANT TENANT FILTERING")
}

func TestSchemaTextWithTenant(t *testing.T) {
	text := SchemaText("TM_TEAM_001")

	assert.Contains(t, text, "IMPORTANT TENANT FILTERING")
	assert.Contains(t, text, "WHERE tenant_id = 'TM_TEAM_001'")
	// The LIKE examples keep their literal wildcards.
	assert.Contains(t, text, "LIKE '%Casagrand%'")
	assert.Equal(t, 1, strings.Count(text, "IMPORTANT TENANT FILTERING"))
}
