package store

import (
	"fmt"

	"github.com/WashLinkHQ/washlink-go/models"
	"github.com/WashLinkHQ/washlink-go/utils"
)

// ListAddresses returns a customer's addresses, default first then newest.
func (s *Store) ListAddresses(customerID string) ([]models.Address, error) {
	rows, err := s.db.Query(`
		SELECT id, customer_id, street, city, state, zip_code, country, is_default,
		       latitude, longitude, created_at, updated_at
		FROM addresses WHERE customer_id = ?
		ORDER BY is_default DESC, created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		err := rows.Scan(&a.ID, &a.CustomerID, &a.Street, &a.City, &a.State, &a.ZipCode,
			&a.Country, &a.IsDefault, &a.Latitude, &a.Longitude, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// GetAddress loads one address by id.
func (s *Store) GetAddress(addressID string) (*models.Address, error) {
	var a models.Address
	err := s.db.QueryRow(`
		SELECT id, customer_id, street, city, state, zip_code, country, is_default,
		       latitude, longitude, created_at, updated_at
		FROM addresses WHERE id = ?`, addressID).
		Scan(&a.ID, &a.CustomerID, &a.Street, &a.City, &a.State, &a.ZipCode,
			&a.Country, &a.IsDefault, &a.Latitude, &a.Longitude, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAddress adds an address. The first address for a customer becomes the
// default automatically; marking a later one default clears the old flag.
func (s *Store) CreateAddress(a models.Address) (*models.Address, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM addresses WHERE customer_id = ?`, a.CustomerID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}
	if count == 0 {
		a.IsDefault = true
	}

	if a.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = 0 WHERE customer_id = ?`, a.CustomerID); err != nil {
			return nil, fmt.Errorf("failed to clear default address: %w", err)
		}
	}

	if a.Country == "" {
		a.Country = "Morocco"
	}

	a.ID = utils.GenerateULID()
	_, err = tx.Exec(`
		INSERT INTO addresses (id, customer_id, street, city, state, zip_code, country,
			is_default, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.CustomerID, a.Street, a.City, a.State, a.ZipCode, a.Country,
		a.IsDefault, a.Latitude, a.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to insert address: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit address: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT id, customer_id, street, city, state, zip_code, country, is_default,
		       latitude, longitude, created_at, updated_at
		FROM addresses WHERE id = ?`, a.ID).
		Scan(&a.ID, &a.CustomerID, &a.Street, &a.City, &a.State, &a.ZipCode,
			&a.Country, &a.IsDefault, &a.Latitude, &a.Longitude, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reload address: %w", err)
	}
	return &a, nil
}
