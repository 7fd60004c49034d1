package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/email"
	"github.com/WashLinkHQ/washlink-go/store"
)

// PlatformOverviewHandler builds the super-admin dashboard.
func PlatformOverviewHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s := store.New(ctx)
	counts, err := s.PlatformCounts(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load platform overview"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputePlatformOverview(counts))
}

// LaundryPerformanceHandler ranks laundries by last-30-day revenue.
func LaundryPerformanceHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, limit := parsePagination(c)
	s := store.New(ctx)
	rows, total, err := s.LaundryPerformance(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load performance data"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"laundries":  rows,
		"pagination": buildPagination(page, limit, total, len(rows)),
	})
}

// GetLaundryHandler loads one laundry with its last-30-day metrics and most
// recent orders for the super-admin detail view.
func GetLaundryHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s := store.New(ctx)
	laundry, err := s.GetLaundry(c.Param("laundryId"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Laundry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load laundry"})
		c.Error(err)
		return
	}

	metrics, err := s.GetLaundryMonthMetrics(laundry.ID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load laundry"})
		c.Error(err)
		return
	}

	recent, _, err := s.ListOrders(store.OrderFilter{LaundryID: laundry.ID, Page: 1, Limit: 5})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load laundry"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"laundry":      laundry,
		"monthMetrics": metrics,
		"recentOrders": recent,
	})
}

// UpdateLaundryHandler applies a partial update to a laundry record.
func UpdateLaundryHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Email       *string `json:"email"`
		Phone       *string `json:"phone"`
		Description *string `json:"description"`
		Logo        *string `json:"logo"`
		City        *string `json:"city"`
		State       *string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := store.New(ctx)
	if req.Email != nil {
		taken, err := s.LaundryEmailTaken(*req.Email, c.Param("laundryId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update laundry"})
			c.Error(err)
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already in use by another laundry"})
			return
		}
	}
	laundry, err := s.UpdateLaundry(c.Param("laundryId"), store.LaundryUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
		Logo:        req.Logo,
		City:        req.City,
		State:       req.State,
	})
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Laundry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update laundry"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"laundry": laundry})
}

// SuspendLaundryHandler suspends a laundry and cancels its queued orders.
func SuspendLaundryHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s := store.New(ctx)
	laundry, canceled, err := s.SuspendLaundry(c.Param("laundryId"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Laundry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suspend laundry"})
		c.Error(err)
		return
	}

	if err := s.RecordActivity(store.ActivityLaundrySuspended,
		"Laundry "+laundry.Name+" suspended", "",
		store.ActivityRef{LaundryID: laundry.ID}); err != nil {
		log.Printf("ERROR: activity for laundry %s: %v", laundry.ID, err)
	}

	if client, err := email.NewClient(); err == nil {
		go func() {
			if err := client.SendSuspensionNotice(laundry, canceled); err != nil {
				log.Printf("ERROR: suspension notice for %s: %v", laundry.ID, err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"laundry":        laundry,
		"canceledOrders": canceled,
	})
}

// ReactivateLaundryHandler lifts a suspension.
func ReactivateLaundryHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s := store.New(ctx)
	laundry, err := s.ReactivateLaundry(c.Param("laundryId"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Laundry not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reactivate laundry"})
		c.Error(err)
		return
	}

	if err := s.RecordActivity(store.ActivityLaundryReactivated,
		"Laundry "+laundry.Name+" reactivated", "",
		store.ActivityRef{LaundryID: laundry.ID}); err != nil {
		log.Printf("ERROR: activity for laundry %s: %v", laundry.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"laundry": laundry})
}
