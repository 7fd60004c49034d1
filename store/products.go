package store

import (
	"fmt"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/models"
)

// ProductsWithSales loads every product for a laundry together with every
// line item ever sold for it, for the products report.
func (s *Store) ProductsWithSales(laundryID string) ([]analytics.ProductSales, error) {
	rows, err := s.db.Query(`
		SELECT id, laundry_id, name, COALESCE(category, ''), COALESCE(unit, ''),
		       price, is_active, created_at
		FROM products WHERE laundry_id = ?
		ORDER BY created_at ASC`, laundryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []analytics.ProductSales
	index := make(map[string]int)
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.LaundryID, &p.Name, &p.Category, &p.Unit,
			&p.Price, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, analytics.ProductSales{Product: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.db.Query(`
		SELECT i.product_id, i.order_id, o.status, o.created_at, i.quantity, i.total_price
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.laundry_id = ?`, laundryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var productID string
		var item analytics.SoldItem
		err := itemRows.Scan(&productID, &item.OrderID, &item.OrderStatus,
			&item.OrderCreatedAt, &item.Quantity, &item.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sold item: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Items = append(products[i].Items, item)
		}
	}
	return products, itemRows.Err()
}

// ListProducts returns a laundry's active products for the ordering flow.
func (s *Store) ListProducts(laundryID string) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT id, laundry_id, name, COALESCE(category, ''), COALESCE(unit, ''),
		       price, is_active, created_at
		FROM products WHERE laundry_id = ? AND is_active = 1
		ORDER BY category ASC, name ASC`, laundryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.LaundryID, &p.Name, &p.Category, &p.Unit,
			&p.Price, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
