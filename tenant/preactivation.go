package tenant

import (
	"fmt"
	"log"
	"time"
)

// PreActivateAllTenants activates every registered tenant at startup so the
// first request never pays the schema-creation cost.
func PreActivateAllTenants(manager *Manager) error {
	registry, err := LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tenant registry: %w", err)
	}

	start := time.Now()
	activated := 0
	skipped := 0

	for tenantID, info := range registry.Tenants {
		if info.Status == "active" {
			skipped++
			continue
		}

		config, err := LoadTenantConfig(tenantID)
		if err != nil {
			log.Printf("ERROR: failed to load config for tenant %s: %v", tenantID, err)
			continue
		}

		database, err := NewDatabase(config)
		if err != nil {
			log.Printf("ERROR: failed to connect database for tenant %s: %v", tenantID, err)
			continue
		}

		ctx := &Context{
			TenantID: tenantID,
			Config:   config,
			Database: database,
			Status:   info.Status,
		}

		if err := ActivateTenant(ctx); err != nil {
			log.Printf("ERROR: failed to activate tenant %s: %v", tenantID, err)
			ctx.Close()
			continue
		}

		dbType := "sqlite3"
		if database.UseTurso {
			dbType = "turso"
		}
		manager.GetDetector().UpdateTenantStatus(tenantID, "active", dbType)
		ctx.Close()
		activated++
	}

	log.Printf("Tenant pre-activation complete: %d activated, %d already active (%v)",
		activated, skipped, time.Since(start))
	return nil
}

// ValidatePreActivation checks that every registered tenant has its tables
func ValidatePreActivation() error {
	registry, err := LoadRegistry()
	if err != nil {
		return err
	}

	for tenantID := range registry.Tenants {
		config, err := LoadTenantConfig(tenantID)
		if err != nil {
			return fmt.Errorf("tenant %s: %w", tenantID, err)
		}

		database, err := NewDatabase(config)
		if err != nil {
			return fmt.Errorf("tenant %s: %w", tenantID, err)
		}

		exists, err := CheckTablesExist(database)
		database.Close()
		if err != nil {
			return fmt.Errorf("tenant %s: %w", tenantID, err)
		}
		if !exists {
			return fmt.Errorf("tenant %s is missing required tables", tenantID)
		}
	}
	return nil
}
