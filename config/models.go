// models.go holds the model and tenant registries.
//
// Both registries live in config.json so deployments can add models or
// tenants without a rebuild. The defaults mirror the hosted models the
// chatbot was tuned against.
package config

import (
	"fmt"
	"sort"
)

// Model describes a selectable completion model.
type Model struct {
	ID          string  `json:"id"`           // e.g. "qwen/qwen-2.5-72b-instruct"
	DisplayName string  `json:"display_name"` // e.g. "Qwen 2.5 (72B)"
	Temperature float64 `json:"temperature"`
}

// Tenant describes a client whose rows are filtered by tenant_id.
// An empty ID means "no filtering, query across all tenants".
type Tenant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
}

// Model looks up a model by registry key.
func (c *Config) Model(key string) (Model, error) {
	if key == "" {
		key = c.DefaultModel
	}
	m, ok := c.Models[key]
	if !ok {
		return Model{}, fmt.Errorf("unknown model %q. Available: %v", key, c.ModelKeys())
	}
	return m, nil
}

// Tenant looks up a tenant by registry key.
func (c *Config) Tenant(key string) (Tenant, error) {
	if key == "" {
		key = c.DefaultTenant
	}
	t, ok := c.Tenants[key]
	if !ok {
		return Tenant{}, fmt.Errorf("unknown tenant %q. Available: %v", key, c.TenantKeys())
	}
	return t, nil
}

// ModelKeys returns the registry keys in stable order.
func (c *Config) ModelKeys() []string {
	keys := make([]string, 0, len(c.Models))
	for k := range c.Models {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TenantKeys returns the tenant keys in stable order.
func (c *Config) TenantKeys() []string {
	keys := make([]string, 0, len(c.Tenants))
	for k := range c.Tenants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default returns sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:            "https://openrouter.ai/api/v1/chat/completions",
			TimeoutSeconds: 30,
		},
		Chat: ChatConfig{
			MaxRetries:   2,
			MaxHistory:   20,
			RouterWindow: 3,
		},
		Database: DatabaseConfig{
			Backend: BackendSQLite,
		},
		Models: map[string]Model{
			"qwen": {
				ID:          "qwen/qwen-2.5-72b-instruct",
				DisplayName: "Qwen 2.5 (72B)",
				Temperature: 0.3,
			},
			"deepseek": {
				ID:          "deepseek/deepseek-chat",
				DisplayName: "DeepSeek V3",
				Temperature: 0.3,
			},
			"deepseek-r1": {
				ID:          "deepseek/deepseek-r1",
				DisplayName: "DeepSeek R1",
				Temperature: 0.3,
			},
			"glm4": {
				ID:          "zhipuai/glm-4-9b-chat",
				DisplayName: "GLM-4 (9B)",
				Temperature: 0.3,
			},
		},
		DefaultModel: "qwen",
		Tenants: map[string]Tenant{
			"all": {
				ID:          "",
				DisplayName: "All Clients",
				Description: "View all projects across all clients",
			},
			"casagrand": {
				ID:          "TM_TEAM_001",
				DisplayName: "Casagrand",
				Description: "Casagrand projects",
			},
			"purvankara": {
				ID:          "PURVA_001",
				DisplayName: "Purvankara",
				Description: "Purva/Purvankara projects",
			},
		},
		DefaultTenant: "all",
	}
}
