package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WashLinkHQ/washlink-go/models"
	"github.com/WashLinkHQ/washlink-go/store"
)

// GetProfileHandler returns the customer's profile with order stats, loyalty
// points and recent orders.
func GetProfileHandler(c *gin.Context) {
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
	customer, err := s.GetCustomer(claims.Subject)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		c.Error(err)
		return
	}

	stats, err := s.GetCustomerStats(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		c.Error(err)
		return
	}

	recent, _, err := s.OrdersForCustomer(customer.ID, 1, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":      customer,
		"stats":        stats,
		"recentOrders": recent,
	})
}

// UpdateProfileHandler writes the customer's mutable profile fields.
func UpdateProfileHandler(c *gin.Context) {
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
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := store.New(ctx)
	customer, err := s.UpdateCustomerProfile(claims.Subject, req.Name, req.Phone, req.Avatar)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": customer})
}

// ListAddressesHandler returns the customer's saved addresses.
func ListAddressesHandler(c *gin.Context) {
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
	addresses, err := s.ListAddresses(claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load addresses"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddressHandler saves a new delivery address for the customer.
func CreateAddressHandler(c *gin.Context) {
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
		Street    string   `json:"street" binding:"required"`
		City      string   `json:"city" binding:"required"`
		State     string   `json:"state" binding:"required"`
		ZipCode   string   `json:"zipCode" binding:"required"`
		Country   string   `json:"country"`
		IsDefault bool     `json:"isDefault"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := store.New(ctx)
	address, err := s.CreateAddress(models.Address{
		CustomerID: claims.Subject,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// ListProductsHandler returns a laundry's active catalog for ordering.
func ListProductsHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s := store.New(ctx)
	products, err := s.ListProducts(c.Param("laundryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
