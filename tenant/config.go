// Package tenant provides multi-tenant configuration and management.
package tenant

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds tenant-specific configuration
type Config struct {
	TenantID      string `json:"tenantId"`
	TursoDatabase string `json:"TURSO_DATABASE_URL"`
	TursoToken    string `json:"TURSO_AUTH_TOKEN"`
	JWTSecret     string `json:"JWT_SECRET"`
	AdminPassword string `json:"ADMIN_PASSWORD"`
	AdminEmail    string `json:"ADMIN_EMAIL"`
	SQLitePath    string `json:"-"` // computed, not from JSON
}

// Registry holds the global tenant configuration
type Registry struct {
	Tenants map[string]Info `json:"tenants"`
}

// Info holds tenant metadata
type Info struct {
	TenantID     string   `json:"tenantId"`
	Domains      []string `json:"domains"`
	Status       string   `json:"status"`       // "unknown", "inactive", "active"
	DatabaseType string   `json:"databaseType"` // "turso", "sqlite3"
}

func baseDir() string {
	if dir := os.Getenv("WASHLINK_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), "washlink-server")
}

// LoadRegistry loads the global tenant registry
func LoadRegistry() (*Registry, error) {
	registryPath := filepath.Join(baseDir(), "config", "tenants.json")

	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		// Default single-tenant registry when none is configured
		return &Registry{
			Tenants: map[string]Info{
				"default": {
					TenantID:     "default",
					Domains:      []string{"*"},
					Status:       "inactive",
					DatabaseType: "",
				},
			},
		}, nil
	}

	data, err := os.ReadFile(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant registry: %w", err)
	}

	var registry Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse tenant registry: %w", err)
	}

	return &registry, nil
}

// LoadTenantConfig loads configuration for a specific tenant and fills in
// generated secrets on first use.
func LoadTenantConfig(tenantID string) (*Config, error) {
	configPath := filepath.Join(baseDir(), "config", tenantID, "env.json")

	config := &Config{
		TenantID:   tenantID,
		SQLitePath: filepath.Join(baseDir(), "db", tenantID, "washlink.db"),
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read tenant config: %w", err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse tenant config: %w", err)
		}
		config.TenantID = tenantID
	}

	changed := false
	if config.JWTSecret == "" {
		secret, err := generateSecret(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		changed = true
	}

	if changed {
		if err := SaveTenantConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// SaveTenantConfig persists a tenant's configuration file.
func SaveTenantConfig(config *Config) error {
	configPath := filepath.Join(baseDir(), "config", config.TenantID, "env.json")
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tenant config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write tenant config: %w", err)
	}
	return nil
}

func generateSecret(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
