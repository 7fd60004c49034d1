// Package tenant provides multi-tenant detection and validation.
package tenant

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

// Detector handles tenant detection from HTTP requests
type Detector struct {
	registry    *Registry
	multiTenant bool
	mu          sync.RWMutex
}

// NewDetector creates a new tenant detector
func NewDetector() (*Detector, error) {
	registry, err := LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant registry: %w", err)
	}

	multiTenant := false
	if val := os.Getenv("ENABLE_MULTI_TENANT"); val != "" {
		multiTenant, _ = strconv.ParseBool(val)
	}

	return &Detector{
		registry:    registry,
		multiTenant: multiTenant,
	}, nil
}

// DetectTenant extracts the tenant ID from the request
func (d *Detector) DetectTenant(c *gin.Context) (string, error) {
	var tenantID string

	if d.multiTenant {
		tenantID = c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			tenantID = c.Query("tenantId")
		}
		if tenantID == "" {
			return "", fmt.Errorf("missing tenant ID header in multi-tenant mode")
		}
	} else {
		// Single tenant mode - always use "default"
		tenantID = "default"
	}

	d.mu.RLock()
	_, exists := d.registry.Tenants[tenantID]
	d.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("unknown tenant: %s", tenantID)
	}

	return tenantID, nil
}

// GetTenantStatus returns the cached status for a tenant
func (d *Detector) GetTenantStatus(tenantID string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if info, exists := d.registry.Tenants[tenantID]; exists {
		return info.Status
	}
	return "unknown"
}

// UpdateTenantStatus updates the cached registry after activation
func (d *Detector) UpdateTenantStatus(tenantID, status, databaseType string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if info, exists := d.registry.Tenants[tenantID]; exists {
		info.Status = status
		info.DatabaseType = databaseType
		d.registry.Tenants[tenantID] = info
	}
}

// TenantIDs lists every registered tenant.
func (d *Detector) TenantIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.registry.Tenants))
	for id := range d.registry.Tenants {
		ids = append(ids, id)
	}
	return ids
}
