package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistries(t *testing.T) {
	cfg := Default()

	assert.Len(t, cfg.Models, 4)
	assert.Contains(t, cfg.Models, "qwen")
	assert.Equal(t, "qwen", cfg.DefaultModel)
	for key, m := range cfg.Models {
		assert.Equal(t, 0.3, m.Temperature, "model %s", key)
	}

	assert.Len(t, cfg.Tenants, 3)
	assert.Equal(t, "", cfg.Tenants["all"].ID)
	assert.Equal(t, "TM_TEAM_001", cfg.Tenants["casagrand"].ID)
	assert.Equal(t, "PURVA_001", cfg.Tenants["purvankara"].ID)

	assert.Equal(t, 2, cfg.Chat.MaxRetries)
	assert.Equal(t, 20, cfg.Chat.MaxHistory)
	assert.Equal(t, 3, cfg.Chat.RouterWindow)
}

func TestModelLookup(t *testing.T) {
	cfg := Default()

	m, err := cfg.Model("deepseek")
	require.NoError(t, err)
	assert.Equal(t, "deepseek/deepseek-chat", m.ID)

	// Empty key means the default model.
	m, err = cfg.Model("")
	require.NoError(t, err)
	assert.Equal(t, cfg.Models[cfg.DefaultModel].ID, m.ID)

	_, err = cfg.Model("nonexistent")
	assert.Error(t, err)
}

func TestTenantLookup(t *testing.T) {
	cfg := Default()

	tenant, err := cfg.Tenant("casagrand")
	require.NoError(t, err)
	assert.Equal(t, "TM_TEAM_001", tenant.ID)

	_, err = cfg.Tenant("nonexistent")
	assert.Error(t, err)
}

func TestKeysAreSorted(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"deepseek", "deepseek-r1", "glm4", "qwen"}, cfg.ModelKeys())
	assert.Equal(t, []string{"all", "casagrand", "purvankara"}, cfg.TenantKeys())
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "env-key")
	t.Setenv("PROPCHAT_MODEL", "glm4")
	t.Setenv("PROPCHAT_DB", "/tmp/custom.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "glm4", cfg.DefaultModel)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("PROPCHAT_MODEL", "")
	t.Setenv("PROPCHAT_DB", "")

	dir := filepath.Join(home, ".propchat")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"default_model": "deepseek", "chat": {"max_retries": 5, "max_history": 20, "router_window": 3}}`), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.DefaultModel)
	assert.Equal(t, 5, cfg.Chat.MaxRetries)

	// The database path defaults under the config dir.
	assert.Equal(t, filepath.Join(dir, "real_estate.db"), cfg.Database.Path)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("PROPCHAT_MODEL", "")
	t.Setenv("PROPCHAT_DB", "")

	cfg := Default()
	cfg.DefaultTenant = "purvankara"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "purvankara", loaded.DefaultTenant)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "missing API key must fail")

	cfg.API.Key = "k"
	assert.NoError(t, cfg.Validate())

	cfg.DefaultModel = "nonexistent"
	assert.Error(t, cfg.Validate())
}
