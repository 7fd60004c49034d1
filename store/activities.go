package store

import (
	"fmt"

	"github.com/WashLinkHQ/washlink-go/utils"
)

// Activity kinds written to the tenant activity feed.
const (
	ActivityCustomerRegistered = "CUSTOMER_REGISTERED"
	ActivityOrderCreated       = "ORDER_CREATED"
	ActivityOrderStatusUpdated = "ORDER_STATUS_UPDATED"
	ActivityLaundrySuspended   = "LAUNDRY_SUSPENDED"
	ActivityLaundryReactivated = "LAUNDRY_REACTIVATED"
)

// ActivityRef links a feed row to the records it concerns. Empty fields are
// stored as NULL.
type ActivityRef struct {
	LaundryID  string
	OrderID    string
	CustomerID string
}

// RecordActivity appends a row to the tenant activity feed. Callers treat
// failures as log-only; an activity write never gates the operation that
// triggered it.
func (s *Store) RecordActivity(kind, title, description string, ref ActivityRef) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (id, type, title, description, laundry_id, order_id, customer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		utils.GenerateULID(), kind, title, nullString(description),
		nullString(ref.LaundryID), nullString(ref.OrderID), nullString(ref.CustomerID))
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
