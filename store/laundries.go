package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/models"
)

const laundryColumns = `id, name, email, COALESCE(phone, ''), COALESCE(description, ''),
	COALESCE(logo, ''), status, rating, total_reviews, total_orders, total_revenue,
	COALESCE(admin_email, ''), COALESCE(city, ''), COALESCE(state, ''), created_at, updated_at`

func scanLaundry(row *sql.Row) (*models.Laundry, error) {
	var l models.Laundry
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Description, &l.Logo,
		&l.Status, &l.Rating, &l.TotalReviews, &l.TotalOrders, &l.TotalRevenue,
		&l.AdminEmail, &l.City, &l.State, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLaundry loads one laundry record by id.
func (s *Store) GetLaundry(laundryID string) (*models.Laundry, error) {
	row := s.db.QueryRow(`SELECT `+laundryColumns+` FROM laundries WHERE id = ?`, laundryID)
	return scanLaundry(row)
}

// GetLaundryByAdminEmail resolves the laundry an admin account manages.
func (s *Store) GetLaundryByAdminEmail(email string) (*models.Laundry, error) {
	row := s.db.QueryRow(`SELECT `+laundryColumns+` FROM laundries WHERE admin_email = ?`,
		strings.ToLower(email))
	return scanLaundry(row)
}

// LaundryUpdate carries the patchable fields of a laundry record. Nil fields
// are left untouched.
type LaundryUpdate struct {
	Name        *string
	Email       *string
	Phone       *string
	Description *string
	Logo        *string
	City        *string
	State       *string
}

// LaundryEmailTaken reports whether another laundry already uses the email.
func (s *Store) LaundryEmailTaken(email, excludeID string) (bool, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM laundries WHERE email = ? AND id != ?`,
		strings.ToLower(email), excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check laundry email: %w", err)
	}
	return true, nil
}

// UpdateLaundry applies a partial update and returns the fresh record.
func (s *Store) UpdateLaundry(laundryID string, in LaundryUpdate) (*models.Laundry, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value *string) {
		if value != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *value)
		}
	}
	add("name", in.Name)
	add("email", in.Email)
	add("phone", in.Phone)
	add("description", in.Description)
	add("logo", in.Logo)
	add("city", in.City)
	add("state", in.State)

	if len(sets) > 0 {
		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, laundryID)
		query := "UPDATE laundries SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := s.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update laundry: %w", err)
		}
	}
	return s.GetLaundry(laundryID)
}

// SuspendLaundry suspends the account and cancels every order that has not
// started processing yet. Returns the number of canceled orders.
func (s *Store) SuspendLaundry(laundryID string) (*models.Laundry, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE laundries SET status = 'SUSPENDED', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		laundryID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to suspend laundry: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, 0, sql.ErrNoRows
	}

	canceled, err := tx.Exec(`
		UPDATE orders SET status = 'CANCELED', updated_at = CURRENT_TIMESTAMP
		WHERE laundry_id = ? AND status IN ('PENDING', 'CONFIRMED')`, laundryID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to cancel pending orders: %w", err)
	}
	canceledCount, _ := canceled.RowsAffected()

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit suspension: %w", err)
	}

	laundry, err := s.GetLaundry(laundryID)
	if err != nil {
		return nil, 0, err
	}
	return laundry, int(canceledCount), nil
}

// ReactivateLaundry flips a suspended laundry back to active.
func (s *Store) ReactivateLaundry(laundryID string) (*models.Laundry, error) {
	result, err := s.db.Exec(
		`UPDATE laundries SET status = 'ACTIVE', updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		laundryID)
	if err != nil {
		return nil, fmt.Errorf("failed to reactivate laundry: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return s.GetLaundry(laundryID)
}

// LaundryMonthMetrics holds one laundry's last-30-day activity for the
// super-admin detail view.
type LaundryMonthMetrics struct {
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	Customers int     `json:"customers"`
	Completed int     `json:"completedOrders"`
}

func (s *Store) GetLaundryMonthMetrics(laundryID string, since time.Time) (LaundryMonthMetrics, error) {
	var m LaundryMonthMetrics
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(final_amount), 0),
		       COUNT(DISTINCT customer_id),
		       COALESCE(SUM(CASE WHEN status IN ('COMPLETED', 'DELIVERED') THEN 1 ELSE 0 END), 0)
		FROM orders WHERE laundry_id = ? AND created_at >= ?`, laundryID, since).
		Scan(&m.Orders, &m.Revenue, &m.Customers, &m.Completed)
	if err != nil {
		return LaundryMonthMetrics{}, fmt.Errorf("failed to query laundry month metrics: %w", err)
	}
	return m, nil
}

// LaundryPerformance pages every laundry ranked by revenue over the last 30
// days.
func (s *Store) LaundryPerformance(page, limit int) ([]models.LaundryPerformance, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM laundries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count laundries: %w", err)
	}

	monthAgo := time.Now().AddDate(0, 0, -30)
	rows, err := s.db.Query(`
		SELECT l.id, l.name, l.email, COALESCE(l.phone, ''), COALESCE(l.logo, ''),
		       l.status, COALESCE(l.city, ''), COALESCE(l.state, ''),
		       l.rating, l.total_reviews, l.total_orders, l.total_revenue, l.created_at,
		       COUNT(o.id),
		       COUNT(DISTINCT o.customer_id),
		       COALESCE(SUM(o.final_amount), 0)
		FROM laundries l
		LEFT JOIN orders o ON o.laundry_id = l.id AND o.created_at >= ?
		GROUP BY l.id
		ORDER BY COALESCE(SUM(o.final_amount), 0) DESC, l.name ASC
		LIMIT ? OFFSET ?`, monthAgo, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query laundry performance: %w", err)
	}
	defer rows.Close()

	var out []models.LaundryPerformance
	for rows.Next() {
		var p models.LaundryPerformance
		var city, state string
		err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Logo, &p.Status,
			&city, &state, &p.Performance.Rating, &p.Performance.TotalReviews,
			&p.Performance.TotalOrders, &p.Performance.TotalRevenue, &p.JoinedAt,
			&p.Performance.OrdersMonth, &p.Performance.Customers, &p.Performance.Revenue)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan laundry performance: %w", err)
		}
		p.Location = formatLocation(city, state)
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func formatLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}

// PlatformCounts gathers the super-admin dashboard scalars. The lifetime,
// current-month and previous-month blocks are fetched concurrently.
func (s *Store) PlatformCounts(ctx context.Context, now time.Time) (analytics.PlatformCounts, error) {
	var counts analytics.PlatformCounts

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM laundries),
				(SELECT COUNT(*) FROM laundries WHERE status = 'ACTIVE'),
				(SELECT COUNT(*) FROM customers),
				(SELECT COUNT(*) FROM orders),
				(SELECT COALESCE(SUM(final_amount), 0) FROM orders),
				(SELECT COUNT(*) FROM orders WHERE status = 'PENDING')`).
			Scan(&counts.TotalLaundries, &counts.ActiveLaundries, &counts.TotalCustomers,
				&counts.TotalOrders, &counts.PlatformRevenue, &counts.PendingOrders)
		if err != nil {
			return fmt.Errorf("failed to query platform totals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM orders WHERE created_at >= ?),
				(SELECT COALESCE(SUM(final_amount), 0) FROM orders WHERE created_at >= ?),
				(SELECT COUNT(*) FROM orders WHERE created_at >= ? AND status IN ('COMPLETED', 'DELIVERED')),
				(SELECT COUNT(*) FROM customers WHERE created_at >= ?)`,
			monthStart, monthStart, monthStart, monthStart).
			Scan(&counts.MonthOrders, &counts.MonthRevenue, &counts.MonthCompleted,
				&counts.MonthNewUsers)
		if err != nil {
			return fmt.Errorf("failed to query month stats: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM orders WHERE created_at >= ? AND created_at < ?),
				(SELECT COALESCE(SUM(final_amount), 0) FROM orders WHERE created_at >= ? AND created_at < ?),
				(SELECT COUNT(*) FROM customers WHERE created_at >= ? AND created_at < ?)`,
			prevStart, monthStart, prevStart, monthStart, prevStart, monthStart).
			Scan(&counts.PrevMonthOrders, &counts.PrevMonthRevenue, &counts.PrevMonthUsers)
		if err != nil {
			return fmt.Errorf("failed to query previous month stats: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return analytics.PlatformCounts{}, err
	}
	return counts, nil
}
