// Package tenant resolves which laundry-platform tenant a request belongs to
// and hands out per-tenant database handles.
package tenant

import (
	"github.com/gin-gonic/gin"
)

// Context carries everything a request needs to talk to one tenant: its
// resolved configuration, an open database handle, and the activation status.
type Context struct {
	TenantID string
	Config   *Config
	Database *Database
	Status   string
}

// Manager pairs the detector with per-request context construction.
type Manager struct {
	detector *Detector
}

func NewManager() (*Manager, error) {
	detector, err := NewDetector()
	if err != nil {
		return nil, err
	}

	return &Manager{
		detector: detector,
	}, nil
}

// GetContext resolves the request's tenant and opens its database. Callers
// own the returned context and must Close it when the request finishes.
func (m *Manager) GetContext(c *gin.Context) (*Context, error) {
	tenantID, err := m.detector.DetectTenant(c)
	if err != nil {
		return nil, err
	}

	config, err := LoadTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	status := m.detector.GetTenantStatus(tenantID)

	database, err := NewDatabase(config)
	if err != nil {
		return nil, err
	}

	return &Context{
		TenantID: tenantID,
		Config:   config,
		Database: database,
		Status:   status,
	}, nil
}

// GetDetector exposes the detector so activation can refresh its status
// cache.
func (m *Manager) GetDetector() *Detector {
	return m.detector
}

// Close releases the database handle.
func (ctx *Context) Close() {
	if ctx.Database != nil {
		ctx.Database.Close()
	}
}
