// Package tenant provides tenant activation and status management.
package tenant

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ActivateTenant creates tables and indexes for an inactive tenant
func ActivateTenant(ctx *Context) error {
	if ctx.Status == "active" {
		return nil // Already activated, trust it's correct
	}

	log.Printf("Activating tenant: %s", ctx.TenantID)
	start := time.Now()

	dbType := "sqlite3"
	if ctx.Database.UseTurso {
		dbType = "turso"
	}

	if err := createTables(ctx.Database); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := createIndexes(ctx.Database); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	// Verify tables actually exist before marking as active
	tablesExist, err := CheckTablesExist(ctx.Database)
	if err != nil {
		return fmt.Errorf("failed to verify tables: %w", err)
	}
	if !tablesExist {
		return fmt.Errorf("tables creation failed - not all tables exist")
	}

	if err := updateTenantStatus(ctx.TenantID, "active", dbType); err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}

	log.Printf("Tenant %s activated (%s) in %v", ctx.TenantID, dbType, time.Since(start))
	ctx.Status = "active"
	return nil
}

var requiredTables = []string{
	"laundries", "customers", "addresses", "products", "orders",
	"order_items", "activities",
}

// CheckTablesExist verifies if all required tables exist
func CheckTablesExist(db *Database) (bool, error) {
	for _, tableName := range requiredTables {
		var name string
		err := db.Conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, tableName).Scan(&name)
		if err == sql.ErrNoRows {
			return false, nil
		} else if err != nil {
			return false, fmt.Errorf("failed to check table %s: %w", tableName, err)
		}
	}
	return true, nil
}

// createTables creates all required database tables
func createTables(db *Database) error {
	tables := []struct {
		name string
		sql  string
	}{
		{"laundries", "CREATE TABLE IF NOT EXISTS laundries (id TEXT PRIMARY KEY, name TEXT NOT NULL, email TEXT NOT NULL UNIQUE, phone TEXT, description TEXT, logo TEXT, status TEXT NOT NULL DEFAULT 'ACTIVE', rating REAL NOT NULL DEFAULT 0, total_reviews INTEGER NOT NULL DEFAULT 0, total_orders INTEGER NOT NULL DEFAULT 0, total_revenue REAL NOT NULL DEFAULT 0, admin_email TEXT, city TEXT, state TEXT, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)"},
		{"customers", "CREATE TABLE IF NOT EXISTS customers (id TEXT PRIMARY KEY, name TEXT, email TEXT NOT NULL UNIQUE, phone TEXT, avatar TEXT, password_hash TEXT, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)"},
		{"addresses", "CREATE TABLE IF NOT EXISTS addresses (id TEXT PRIMARY KEY, customer_id TEXT NOT NULL REFERENCES customers(id), street TEXT NOT NULL, city TEXT NOT NULL, state TEXT NOT NULL, zip_code TEXT NOT NULL, country TEXT NOT NULL DEFAULT 'Morocco', is_default BOOLEAN NOT NULL DEFAULT 0, latitude REAL, longitude REAL, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)"},
		{"products", "CREATE TABLE IF NOT EXISTS products (id TEXT PRIMARY KEY, laundry_id TEXT NOT NULL REFERENCES laundries(id), name TEXT NOT NULL, category TEXT, unit TEXT, price REAL NOT NULL, is_active BOOLEAN NOT NULL DEFAULT 1, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)"},
		{"orders", "CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, order_number TEXT NOT NULL UNIQUE, laundry_id TEXT NOT NULL REFERENCES laundries(id), customer_id TEXT NOT NULL REFERENCES customers(id), address_id TEXT NOT NULL REFERENCES addresses(id), status TEXT NOT NULL DEFAULT 'PENDING', total_amount REAL NOT NULL DEFAULT 0, delivery_fee REAL NOT NULL DEFAULT 0, discount REAL NOT NULL DEFAULT 0, final_amount REAL NOT NULL DEFAULT 0, notes TEXT, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, pickup_date TIMESTAMP, delivery_date TIMESTAMP)"},
		{"order_items", "CREATE TABLE IF NOT EXISTS order_items (id TEXT PRIMARY KEY, order_id TEXT NOT NULL REFERENCES orders(id), product_id TEXT NOT NULL REFERENCES products(id), quantity INTEGER NOT NULL, price REAL NOT NULL, total_price REAL NOT NULL)"},
		{"activities", "CREATE TABLE IF NOT EXISTS activities (id TEXT PRIMARY KEY, type TEXT NOT NULL, title TEXT NOT NULL, description TEXT, laundry_id TEXT REFERENCES laundries(id), order_id TEXT REFERENCES orders(id), customer_id TEXT REFERENCES customers(id), metadata TEXT, created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)"},
	}

	for _, t := range tables {
		var name string
		err := db.Conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, t.name).Scan(&name)
		if err == sql.ErrNoRows {
			if _, err := db.Conn.Exec(t.sql); err != nil {
				return fmt.Errorf("failed to create table %s: %w", t.name, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to check table %s existence: %w", t.name, err)
		}
	}

	return nil
}

// createIndexes creates all required database indexes
func createIndexes(db *Database) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_laundry_created ON orders(laundry_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_laundry_id ON products(laundry_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_addresses_customer_id ON addresses(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)",
		"CREATE INDEX IF NOT EXISTS idx_activities_laundry_id ON activities(laundry_id)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Conn.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// updateTenantStatus updates the tenant status in the registry file
func updateTenantStatus(tenantID, status, dbType string) error {
	registryPath := filepath.Join(baseDir(), "config", "tenants.json")

	registry, err := LoadRegistry()
	if err != nil {
		return err
	}

	if info, exists := registry.Tenants[tenantID]; exists {
		info.Status = status
		if dbType != "" {
			info.DatabaseType = dbType
		}
		registry.Tenants[tenantID] = info
	}

	if err := os.MkdirAll(filepath.Dir(registryPath), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.WriteFile(registryPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}
