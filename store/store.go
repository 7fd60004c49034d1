// Package store implements per-tenant persistence over the tenant database.
package store

import (
	"database/sql"
	"strings"

	"github.com/WashLinkHQ/washlink-go/tenant"
)

// Store wraps a tenant database connection with the query layer.
type Store struct {
	db       *sql.DB
	tenantID string
}

// New builds a store bound to the tenant context's connection.
func New(ctx *tenant.Context) *Store {
	return &Store{
		db:       ctx.Database.Conn,
		tenantID: ctx.TenantID,
	}
}

// placeholders returns "?,?,..." for n bound parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// nullString maps empty strings to NULL on write.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
