// Package models defines the core domain records for the WashLink marketplace.
package models

import "time"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusInProgress     OrderStatus = "IN_PROGRESS"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCompleted      OrderStatus = "COMPLETED"
	StatusCanceled       OrderStatus = "CANCELED"
	StatusRefunded       OrderStatus = "REFUNDED"
)

// ActiveStatuses are the states in which an order still needs work.
var ActiveStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusInProgress,
	StatusReadyForPickup, StatusOutForDelivery,
}

// IsCompleted reports whether the order counts toward completed revenue.
func (s OrderStatus) IsCompleted() bool {
	return s == StatusCompleted || s == StatusDelivered
}

// IsValid reports whether s is one of the known lifecycle states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusReadyForPickup,
		StatusOutForDelivery, StatusDelivered, StatusCompleted, StatusCanceled, StatusRefunded:
		return true
	}
	return false
}

// LineItem is one product line on an order. Category may be empty when the
// product has no category assigned; aggregation groups those under "Other".
type LineItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"orderId"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"totalPrice"`
}

// CustomerRef is the minimal customer projection embedded in order rows.
type CustomerRef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName falls back to the email local part when no name is set.
func (c CustomerRef) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	for i := 0; i < len(c.Email); i++ {
		if c.Email[i] == '@' {
			return c.Email[:i]
		}
	}
	return c.Email
}

// Order is a customer order scoped to one laundry.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	LaundryID    string      `json:"laundryId"`
	CustomerID   string      `json:"customerId"`
	AddressID    string      `json:"addressId"`
	Status       OrderStatus `json:"status"`
	TotalAmount  float64     `json:"totalAmount"`
	DeliveryFee  float64     `json:"deliveryFee"`
	Discount     float64     `json:"discount"`
	FinalAmount  float64     `json:"finalAmount"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	PickupDate   *time.Time  `json:"pickupDate,omitempty"`
	DeliveryDate *time.Time  `json:"deliveryDate,omitempty"`
	Customer     CustomerRef `json:"customer"`
	Items        []LineItem  `json:"items"`
}

// Customer is a full customer record.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Address is a customer delivery address.
type Address struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"-"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	ZipCode    string    `json:"zipCode"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"isDefault"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LaundryStatus enumerates laundry account states.
type LaundryStatus string

const (
	LaundryActive    LaundryStatus = "ACTIVE"
	LaundrySuspended LaundryStatus = "SUSPENDED"
)

// Laundry is one tenant business unit on the platform.
type Laundry struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone,omitempty"`
	Description  string        `json:"description,omitempty"`
	Logo         string        `json:"logo,omitempty"`
	Status       LaundryStatus `json:"status"`
	Rating       float64       `json:"rating"`
	TotalReviews int           `json:"totalReviews"`
	TotalOrders  int           `json:"totalOrders"`
	TotalRevenue float64       `json:"totalRevenue"`
	AdminEmail   string        `json:"adminEmail,omitempty"`
	City         string        `json:"city,omitempty"`
	State        string        `json:"state,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Product is a laundry service item that can appear on orders.
type Product struct {
	ID        string    `json:"id"`
	LaundryID string    `json:"laundryId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
