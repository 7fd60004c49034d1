package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/models"
	"github.com/WashLinkHQ/washlink-go/utils"
)

// LifetimeCustomerAggs groups every order a laundry has ever received by
// customer. The grouping runs in SQL so the segmentation layer never has to
// hold the full order history in memory. MIN/MAX strip the column's declared
// type under SQLite, so the order bounds are selected as unix seconds.
func (s *Store) LifetimeCustomerAggs(laundryID string) ([]analytics.CustomerAgg, error) {
	rows, err := s.db.Query(`
		SELECT c.id, COALESCE(c.name, ''), c.email, c.created_at,
		       COUNT(o.id), COALESCE(SUM(o.final_amount), 0),
		       CAST(strftime('%s', MIN(o.created_at)) AS INTEGER),
		       CAST(strftime('%s', MAX(o.created_at)) AS INTEGER)
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		WHERE o.laundry_id = ?
		GROUP BY c.id
		ORDER BY MIN(o.created_at) ASC`, laundryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []analytics.CustomerAgg
	for rows.Next() {
		var a analytics.CustomerAgg
		err := rows.Scan(&a.Customer.ID, &a.Customer.Name, &a.Customer.Email,
			&a.Customer.CreatedAt, &a.Orders, &a.Spent, &a.FirstOrder, &a.LastOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// CustomerFilter narrows and pages the admin customer directory.
type CustomerFilter struct {
	LaundryID string
	Search    string
	Segment   string // "new", "regular", "premium", "vip"
	SortBy    string // "recent", "name", "orders", "spent"
	Page      int
	Limit     int
}

// segmentHaving mirrors analytics.Classify so segment filtering can happen
// in the grouped query instead of after pagination.
func segmentHaving(segment string) string {
	const vip = "COUNT(o.id) >= 5 AND SUM(o.final_amount) >= 500"
	const premium = "COUNT(o.id) >= 3 AND SUM(o.final_amount) >= 200"
	switch segment {
	case "vip":
		return " HAVING " + vip
	case "premium":
		return " HAVING " + premium + " AND NOT (" + vip + ")"
	case "regular":
		return " HAVING COUNT(o.id) >= 2 AND NOT (" + premium + ")"
	case "new":
		return " HAVING COUNT(o.id) < 2"
	default:
		return ""
	}
}

// CustomerDirectory pages the admin customer list with lifetime stats and the
// most recent order per customer.
func (s *Store) CustomerDirectory(filter CustomerFilter) ([]models.CustomerProfileRow, int, error) {
	where := "WHERE o.laundry_id = ?"
	args := []interface{}{filter.LaundryID}
	if filter.Search != "" {
		where += " AND (c.name LIKE ? OR c.email LIKE ? OR c.phone LIKE ?)"
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}

	having := segmentHaving(filter.Segment)

	var total int
	countSQL := fmt.Sprintf(`
		SELECT COUNT(*) FROM (
			SELECT c.id FROM customers c JOIN orders o ON o.customer_id = c.id
			%s GROUP BY c.id%s)`, where, having)
	if err := s.db.QueryRow(countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	orderBy := "MAX(o.created_at) DESC"
	switch filter.SortBy {
	case "name":
		orderBy = "c.name ASC"
	case "orders":
		orderBy = "COUNT(o.id) DESC"
	case "spent":
		orderBy = "SUM(o.final_amount) DESC"
	}

	query := fmt.Sprintf(`
		SELECT c.id, COALESCE(c.name, ''), c.email, COALESCE(c.phone, ''),
		       COALESCE(c.avatar, ''), c.created_at,
		       COUNT(o.id),
		       SUM(CASE WHEN o.status IN ('COMPLETED', 'DELIVERED') THEN 1 ELSE 0 END),
		       COALESCE(SUM(o.final_amount), 0)
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		%s
		GROUP BY c.id%s
		ORDER BY %s LIMIT ? OFFSET ?`, where, having, orderBy)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var out []models.CustomerProfileRow
	for rows.Next() {
		var r models.CustomerProfileRow
		err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Phone, &r.Avatar, &r.MemberSince,
			&r.Stats.TotalOrders, &r.Stats.CompletedOrders, &r.Stats.TotalSpent)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		if r.Stats.TotalOrders > 0 {
			r.Stats.AverageOrderValue = r.Stats.TotalSpent / float64(r.Stats.TotalOrders)
		}
		r.Segment = analytics.Classify(r.Stats.TotalOrders, r.Stats.TotalSpent)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range out {
		last, err := s.lastOrder(out[i].ID, filter.LaundryID)
		if err != nil {
			return nil, 0, err
		}
		out[i].LastOrder = last
		out[i].Status = customerStatus(last)
	}
	return out, total, nil
}

// customerStatus labels directory rows by recency of the last order.
func customerStatus(last *models.LastOrderInfo) string {
	if last == nil {
		return "inactive"
	}
	if last.DaysSince <= 30 {
		return "active"
	}
	if last.DaysSince <= 90 {
		return "at-risk"
	}
	return "inactive"
}

func (s *Store) lastOrder(customerID, laundryID string) (*models.LastOrderInfo, error) {
	var info models.LastOrderInfo
	err := s.db.QueryRow(`
		SELECT id, final_amount, created_at, status
		FROM orders WHERE customer_id = ? AND laundry_id = ?
		ORDER BY created_at DESC LIMIT 1`, customerID, laundryID).
		Scan(&info.ID, &info.Amount, &info.Date, &info.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to query last order: %w", err)
	}
	info.DaysSince = int(time.Since(info.Date).Hours() / 24)
	return &info, nil
}

// GetCustomer loads one customer record by id.
func (s *Store) GetCustomer(customerID string) (*models.Customer, error) {
	var c models.Customer
	err := s.db.QueryRow(`
		SELECT id, COALESCE(name, ''), email, COALESCE(phone, ''), COALESCE(avatar, ''),
		       created_at, updated_at
		FROM customers WHERE id = ?`, customerID).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Avatar, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCustomerByEmail loads a customer and password hash for login checks.
func (s *Store) GetCustomerByEmail(email string) (*models.Customer, string, error) {
	var c models.Customer
	var hash sql.NullString
	err := s.db.QueryRow(`
		SELECT id, COALESCE(name, ''), email, COALESCE(phone, ''), COALESCE(avatar, ''),
		       COALESCE(password_hash, ''), created_at, updated_at
		FROM customers WHERE email = ?`, strings.ToLower(email)).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Avatar, &hash, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, "", err
	}
	return &c, hash.String, nil
}

// CreateCustomer registers a customer. Emails are unique per tenant.
func (s *Store) CreateCustomer(name, email, phone, passwordHash string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing string
	err := s.db.QueryRow(`SELECT id FROM customers WHERE email = ?`, email).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("customer with email %s already exists", email)
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	id := utils.GenerateULID()
	_, err = s.db.Exec(`
		INSERT INTO customers (id, name, email, phone, password_hash)
		VALUES (?, ?, ?, ?, ?)`,
		id, nullString(name), email, nullString(phone), nullString(passwordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}
	return s.GetCustomer(id)
}

// UpdateCustomerProfile writes the mutable profile fields.
func (s *Store) UpdateCustomerProfile(customerID, name, phone, avatar string) (*models.Customer, error) {
	_, err := s.db.Exec(`
		UPDATE customers SET name = ?, phone = ?, avatar = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		nullString(name), nullString(phone), nullString(avatar), customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return s.GetCustomer(customerID)
}

// CustomerStats summarizes a customer's order history for the profile view.
// Loyalty points accrue one per whole currency unit of completed spend.
type CustomerStats struct {
	TotalOrders     int     `json:"totalOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalSpent      float64 `json:"totalSpent"`
	LoyaltyPoints   int     `json:"loyaltyPoints"`
}

func (s *Store) GetCustomerStats(customerID string) (CustomerStats, error) {
	var st CustomerStats
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status IN ('COMPLETED', 'DELIVERED') THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status IN ('COMPLETED', 'DELIVERED') THEN final_amount ELSE 0 END), 0)
		FROM orders WHERE customer_id = ?`, customerID).
		Scan(&st.TotalOrders, &st.CompletedOrders, &st.TotalSpent)
	if err != nil {
		return CustomerStats{}, fmt.Errorf("failed to query customer stats: %w", err)
	}
	st.LoyaltyPoints = int(st.TotalSpent)
	return st, nil
}
