package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/store"
)

// CustomerDirectoryHandler pages the laundry's customer list with lifetime
// stats and segment labels.
func CustomerDirectoryHandler(c *gin.Context) {
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
	filter := store.CustomerFilter{
		LaundryID: laundryID,
		Search:    c.Query("search"),
		Segment:   c.Query("segment"),
		SortBy:    c.Query("sortBy"),
		Page:      page,
		Limit:     limit,
	}

	s := store.New(ctx)
	customers, total, err := s.CustomerDirectory(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customers"})
		c.Error(err)
		return
	}

	aggs, err := s.LifetimeCustomerAggs(laundryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customers"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"segments":   analytics.SegmentBreakdown(aggs),
		"pagination": buildPagination(page, limit, total, len(customers)),
	})
}

// CreateCustomerHandler registers a walk-in customer from the admin side.
// No password is set; the customer can claim the account later.
func CreateCustomerHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, ok := adminLaundryID(c); !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := store.New(ctx)
	customer, err := s.CreateCustomer(req.Name, req.Email, req.Phone, "")
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": "A customer with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		c.Error(err)
		return
	}

	if err := s.RecordActivity(store.ActivityCustomerRegistered,
		"Customer "+customer.Email+" registered", "",
		store.ActivityRef{CustomerID: customer.ID}); err != nil {
		log.Printf("ERROR: activity for customer %s: %v", customer.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}
