package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/models"
	"github.com/WashLinkHQ/washlink-go/utils"
)

// OrderFilter narrows and pages the admin order listing.
type OrderFilter struct {
	LaundryID string
	Status    models.OrderStatus
	Service   string // product category on at least one line item
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    string // "newest", "oldest", "amount-high", "amount-low"
	Page      int
	Limit     int
}

// OrdersInWindow loads every order for a laundry created inside the window,
// with the customer projection and line items attached. The end bound is
// inclusive, matching Window.Contains.
func (s *Store) OrdersInWindow(laundryID string, window analytics.Window) ([]models.Order, error) {
	return s.ordersBetween(laundryID, window.Start, window.End, "<=")
}

// OrdersInPreviousWindow loads the equal-length period before the window.
// The shared boundary stays exclusive so an order created exactly at the
// split only counts toward the current period.
func (s *Store) OrdersInPreviousWindow(laundryID string, window analytics.Window) ([]models.Order, error) {
	prev := window.Previous()
	return s.ordersBetween(laundryID, prev.Start, prev.End, "<")
}

func (s *Store) ordersBetween(laundryID string, start, end time.Time, endOp string) ([]models.Order, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT o.id, o.order_number, o.laundry_id, o.customer_id, o.address_id,
		       o.status, o.total_amount, o.delivery_fee, o.discount, o.final_amount,
		       COALESCE(o.notes, ''), o.created_at, o.pickup_date, o.delivery_date,
		       c.id, COALESCE(c.name, ''), c.email, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.laundry_id = ? AND o.created_at >= ? AND o.created_at %s ?
		ORDER BY o.created_at DESC`, endOp),
		laundryID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders pages the admin order listing with optional status and search
// filters. Search matches the order number and the customer name or email.
func (s *Store) ListOrders(filter OrderFilter) ([]models.Order, int, error) {
	where := "WHERE o.laundry_id = ?"
	args := []interface{}{filter.LaundryID}

	if filter.Status != "" {
		where += " AND o.status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.Service != "" {
		where += ` AND EXISTS (
			SELECT 1 FROM order_items i JOIN products p ON p.id = i.product_id
			WHERE i.order_id = o.id AND p.category = ?)`
		args = append(args, filter.Service)
	}
	if filter.Search != "" {
		where += " AND (o.order_number LIKE ? OR c.name LIKE ? OR c.email LIKE ?)"
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}
	if filter.DateFrom != nil {
		where += " AND o.created_at >= ?"
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where += " AND o.created_at <= ?"
		args = append(args, *filter.DateTo)
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM orders o JOIN customers c ON c.id = o.customer_id " + where
	if err := s.db.QueryRow(countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orderBy := "o.created_at DESC"
	switch filter.SortBy {
	case "oldest":
		orderBy = "o.created_at ASC"
	case "amount-high":
		orderBy = "o.final_amount DESC"
	case "amount-low":
		orderBy = "o.final_amount ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT o.id, o.order_number, o.laundry_id, o.customer_id, o.address_id,
		       o.status, o.total_amount, o.delivery_fee, o.discount, o.final_amount,
		       COALESCE(o.notes, ''), o.created_at, o.pickup_date, o.delivery_date,
		       c.id, COALESCE(c.name, ''), c.email, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		%s ORDER BY %s LIMIT ? OFFSET ?`, where, orderBy)
	args = append(args, filter.Limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := s.loadItems(orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// OrderStatusCounts tallies a laundry's orders per lifecycle state for the
// listing summary strip.
func (s *Store) OrderStatusCounts(laundryID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT status, COUNT(*) FROM orders WHERE laundry_id = ? GROUP BY status`, laundryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count order statuses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// GetOrder loads one order by id with items and customer attached.
func (s *Store) GetOrder(orderID string) (*models.Order, error) {
	rows, err := s.db.Query(`
		SELECT o.id, o.order_number, o.laundry_id, o.customer_id, o.address_id,
		       o.status, o.total_amount, o.delivery_fee, o.discount, o.final_amount,
		       COALESCE(o.notes, ''), o.created_at, o.pickup_date, o.delivery_date,
		       c.id, COALESCE(c.name, ''), c.email, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, sql.ErrNoRows
	}
	if err := s.loadItems(orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// UpdateOrderStatus transitions an order to a new lifecycle state.
func (s *Store) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	result, err := s.db.Exec(
		`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// NewOrderItem is one requested line on an order being placed.
type NewOrderItem struct {
	ProductID string
	Quantity  int
}

// NewOrder is the input for placing an order.
type NewOrder struct {
	LaundryID  string
	CustomerID string
	AddressID  string
	Items      []NewOrderItem
	Notes      string
	PickupDate *time.Time
}

// CreateOrder places an order in a single transaction, pricing each line from
// the current product price and stamping a generated order number.
func (s *Store) CreateOrder(in NewOrder, deliveryFee float64) (*models.Order, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalAmount float64
	type pricedItem struct {
		productID  string
		quantity   int
		price      float64
		totalPrice float64
	}
	priced := make([]pricedItem, 0, len(in.Items))
	for _, item := range in.Items {
		var price float64
		err := tx.QueryRow(
			`SELECT price FROM products WHERE id = ? AND laundry_id = ? AND is_active = 1`,
			item.ProductID, in.LaundryID).Scan(&price)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %s not found or inactive", item.ProductID)
		} else if err != nil {
			return nil, fmt.Errorf("failed to price item: %w", err)
		}
		lineTotal := price * float64(item.Quantity)
		totalAmount += lineTotal
		priced = append(priced, pricedItem{item.ProductID, item.Quantity, price, lineTotal})
	}

	orderID := utils.GenerateULID()
	orderNumber := fmt.Sprintf("WL-%s-%s", time.Now().Format("20060102"), orderID[len(orderID)-6:])
	finalAmount := totalAmount + deliveryFee

	_, err = tx.Exec(`
		INSERT INTO orders (id, order_number, laundry_id, customer_id, address_id,
			status, total_amount, delivery_fee, discount, final_amount, notes, pickup_date)
		VALUES (?, ?, ?, ?, ?, 'PENDING', ?, ?, 0, ?, ?, ?)`,
		orderID, orderNumber, in.LaundryID, in.CustomerID, in.AddressID,
		totalAmount, deliveryFee, finalAmount, nullString(in.Notes), in.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range priced {
		_, err = tx.Exec(`
			INSERT INTO order_items (id, order_id, product_id, quantity, price, total_price)
			VALUES (?, ?, ?, ?, ?, ?)`,
			utils.GenerateULID(), orderID, item.productID, item.quantity, item.price, item.totalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return s.GetOrder(orderID)
}

// ActiveOrders returns a customer's in-flight orders, newest first.
func (s *Store) ActiveOrders(customerID string) ([]models.Order, error) {
	statuses := make([]interface{}, 0, len(models.ActiveStatuses)+1)
	statuses = append(statuses, customerID)
	for _, st := range models.ActiveStatuses {
		statuses = append(statuses, string(st))
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT o.id, o.order_number, o.laundry_id, o.customer_id, o.address_id,
		       o.status, o.total_amount, o.delivery_fee, o.discount, o.final_amount,
		       COALESCE(o.notes, ''), o.created_at, o.pickup_date, o.delivery_date,
		       c.id, COALESCE(c.name, ''), c.email, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.customer_id = ? AND o.status IN (%s)
		ORDER BY o.created_at DESC`, placeholders(len(models.ActiveStatuses))),
		statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to query active orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrdersForCustomer pages a customer's order history, newest first.
func (s *Store) OrdersForCustomer(customerID string, page, limit int) ([]models.Order, int, error) {
	var total int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE customer_id = ?`, customerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT o.id, o.order_number, o.laundry_id, o.customer_id, o.address_id,
		       o.status, o.total_amount, o.delivery_fee, o.discount, o.final_amount,
		       COALESCE(o.notes, ''), o.created_at, o.pickup_date, o.delivery_date,
		       c.id, COALESCE(c.name, ''), c.email, c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.customer_id = ?
		ORDER BY o.created_at DESC LIMIT ? OFFSET ?`,
		customerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := s.loadItems(orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var pickup, delivery sql.NullTime
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.LaundryID, &o.CustomerID, &o.AddressID,
			&o.Status, &o.TotalAmount, &o.DeliveryFee, &o.Discount, &o.FinalAmount,
			&o.Notes, &o.CreatedAt, &pickup, &delivery,
			&o.Customer.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if pickup.Valid {
			o.PickupDate = &pickup.Time
		}
		if delivery.Valid {
			o.DeliveryDate = &delivery.Time
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// loadItems attaches line items (with product name and category) to orders.
func (s *Store) loadItems(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[string]int, len(orders))
	args := make([]interface{}, 0, len(orders))
	for i := range orders {
		index[orders[i].ID] = i
		args = append(args, orders[i].ID)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT i.id, i.order_id, i.product_id, p.name, COALESCE(p.category, ''),
		       COALESCE(p.unit, ''), i.quantity, i.price, i.total_price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id IN (%s)`, placeholders(len(orders))), args...)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.LineItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Category, &item.Unit, &item.Quantity, &item.Price, &item.TotalPrice)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}
