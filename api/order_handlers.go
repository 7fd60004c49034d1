package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WashLinkHQ/washlink-go/config"
	"github.com/WashLinkHQ/washlink-go/email"
	"github.com/WashLinkHQ/washlink-go/models"
	"github.com/WashLinkHQ/washlink-go/store"
)

// parsePagination reads page/limit query params with clamped defaults.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.DefaultPageLimit)))
	if limit < 1 {
		limit = config.DefaultPageLimit
	}
	if limit > config.MaxPageLimit {
		limit = config.MaxPageLimit
	}
	return page, limit
}

func buildPagination(page, limit, total, showing int) models.Pagination {
	totalPages := (total + limit - 1) / limit
	return models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Showing:     showing,
	}
}

// orderPriority grades an in-flight order by how close its pickup is.
func orderPriority(o models.Order, now time.Time) (priority string, overdue bool) {
	if o.PickupDate == nil {
		return "low", false
	}
	until := o.PickupDate.Sub(now)
	active := false
	for _, st := range models.ActiveStatuses {
		if o.Status == st {
			active = true
			break
		}
	}
	if active && until < 0 {
		return "high", true
	}
	switch {
	case until < 24*time.Hour:
		return "high", false
	case until < 72*time.Hour:
		return "medium", false
	default:
		return "low", false
	}
}

// AdminListOrdersHandler pages the laundry's orders with filters and grades
// each row's pickup urgency.
func AdminListOrdersHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	laundryID, ok := adminLaundryID(c)
	if !ok {
		return
	}

	page, limit := parsePagination(c)
	filter := store.OrderFilter{
		LaundryID: laundryID,
		Service:   c.Query("service"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		Page:      page,
		Limit:     limit,
	}
	if status := c.Query("status"); status != "" {
		st := models.OrderStatus(status)
		if !st.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		filter.Status = st
	}
	if raw := c.Query("startDate"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
			return
		}
		to := parsed.AddDate(0, 0, 1).Add(-time.Second)
		filter.DateTo = &to
	}

	s := store.New(ctx)
	orders, total, err := s.ListOrders(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		c.Error(err)
		return
	}

	summary, err := s.OrderStatusCounts(laundryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		c.Error(err)
		return
	}

	now := time.Now()
	rows := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		priority, overdue := orderPriority(o, now)
		rows = append(rows, gin.H{
			"order":     o,
			"priority":  priority,
			"isOverdue": overdue,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":        rows,
		"statusSummary": summary,
		"pagination":    buildPagination(page, limit, total, len(orders)),
	})
}

// UpdateOrderStatusHandler transitions one order's lifecycle state.
func UpdateOrderStatusHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	laundryID, ok := adminLaundryID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	status := models.OrderStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	s := store.New(ctx)
	order, err := s.GetOrder(c.Param("orderId"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		c.Error(err)
		return
	}
	if order.LaundryID != laundryID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order belongs to another laundry"})
		return
	}

	if err := s.UpdateOrderStatus(order.ID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		c.Error(err)
		return
	}

	if err := s.RecordActivity(store.ActivityOrderStatusUpdated,
		"Order "+order.OrderNumber+" moved to "+string(status), "",
		store.ActivityRef{LaundryID: order.LaundryID, OrderID: order.ID, CustomerID: order.CustomerID}); err != nil {
		log.Printf("ERROR: activity for order %s: %v", order.ID, err)
	}

	order.Status = status
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CreateOrderHandler places an order for the authenticated customer.
func CreateOrderHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	claims, err := getClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		LaundryID  string `json:"laundryId" binding:"required"`
		AddressID  string `json:"addressId" binding:"required"`
		Notes      string `json:"notes"`
		PickupDate string `json:"pickupDate"`
		Items      []struct {
			ProductID string `json:"productId" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,min=1"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := store.New(ctx)

	laundry, err := s.GetLaundry(req.LaundryID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Laundry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load laundry"})
		c.Error(err)
		return
	}
	if laundry.Status != models.LaundryActive {
		c.JSON(http.StatusConflict, gin.H{"error": "This laundry is not accepting orders"})
		return
	}

	address, err := s.GetAddress(req.AddressID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load address"})
		c.Error(err)
		return
	}
	if address.CustomerID != claims.Subject {
		c.JSON(http.StatusForbidden, gin.H{"error": "Address belongs to another customer"})
		return
	}

	in := store.NewOrder{
		LaundryID:  req.LaundryID,
		CustomerID: claims.Subject,
		AddressID:  req.AddressID,
		Notes:      req.Notes,
	}
	if req.PickupDate != "" {
		pickup, err := time.Parse(time.RFC3339, req.PickupDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup date"})
			return
		}
		in.PickupDate = &pickup
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, store.NewOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := s.CreateOrder(in, config.DeliveryFee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.RecordActivity(store.ActivityOrderCreated,
		"Order "+order.OrderNumber+" placed", "",
		store.ActivityRef{LaundryID: order.LaundryID, OrderID: order.ID, CustomerID: order.CustomerID}); err != nil {
		log.Printf("ERROR: activity for order %s: %v", order.ID, err)
	}

	// Confirmation email is best effort; the order stands either way.
	if client, err := email.NewClient(); err == nil {
		go func() {
			if err := client.SendOrderConfirmation(order, laundry.Name); err != nil {
				log.Printf("ERROR: order confirmation email for %s: %v", order.OrderNumber, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// UserOrdersHandler pages the authenticated customer's order history.
func UserOrdersHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	claims, err := getClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	page, limit := parsePagination(c)
	s := store.New(ctx)
	orders, total, err := s.OrdersForCustomer(claims.Subject, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": buildPagination(page, limit, total, len(orders)),
	})
}

// ActiveOrdersHandler returns the customer's in-flight orders.
func ActiveOrdersHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	claims, err := getClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	s := store.New(ctx)
	orders, err := s.ActiveOrders(claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load active orders"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}
