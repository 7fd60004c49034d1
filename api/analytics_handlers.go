package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/WashLinkHQ/washlink-go/analytics"
	"github.com/WashLinkHQ/washlink-go/models"
	"github.com/WashLinkHQ/washlink-go/store"
)

// parseWindow resolves the reporting window from query params. Explicit
// startDate/endDate win over the timeframe shorthand.
func parseWindow(c *gin.Context, now time.Time) (analytics.Window, string) {
	timeframe := c.Query("timeframe")

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate != "" && endDate != "" {
		start, err1 := time.Parse("2006-01-02", startDate)
		end, err2 := time.Parse("2006-01-02", endDate)
		if err1 == nil && err2 == nil && !end.Before(start) {
			// Include the whole end day.
			return analytics.Window{Start: start, End: end.AddDate(0, 0, 1).Add(-time.Second)}, "custom"
		}
	}

	window := analytics.TimeframeWindow(timeframe, analytics.TimeframeMonth, now)
	name, _, _ := analytics.TimeframeSpec(timeframe, analytics.TimeframeMonth)
	return window, name
}

// adminLaundryID resolves which laundry the authenticated admin manages.
func adminLaundryID(c *gin.Context) (string, bool) {
	claims, err := getClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return "", false
	}
	return claims.Subject, true
}

// AnalyticsOverviewHandler builds the admin dashboard report for the
// requested window, with period-over-period growth.
func AnalyticsOverviewHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	laundryID, ok := adminLaundryID(c)
	if !ok {
		return
	}

	window, _ := parseWindow(c, time.Now())
	s := store.New(ctx)

	var current, previous []models.Order
	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		current, err = s.OrdersInWindow(laundryID, window)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.OrdersInPreviousWindow(laundryID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeOverview(current, previous, window))
}

// CustomerAnalyticsHandler builds the customer growth and segmentation report.
func CustomerAnalyticsHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	laundryID, ok := adminLaundryID(c)
	if !ok {
		return
	}

	now := time.Now()
	timeframe := c.Query("timeframe")
	window := analytics.TimeframeWindow(timeframe, analytics.TimeframeMonth, now)

	s := store.New(ctx)

	var lifetime []analytics.CustomerAgg
	var windowOrders []models.Order
	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		lifetime, err = s.LifetimeCustomerAggs(laundryID)
		return err
	})
	g.Go(func() error {
		var err error
		windowOrders, err = s.OrdersInWindow(laundryID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer analytics"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeCustomerOverview(lifetime, windowOrders, timeframe, now))
}

// AOVHandler builds the average order value report.
func AOVHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	laundryID, ok := adminLaundryID(c)
	if !ok {
		return
	}

	now := time.Now()
	timeframe := c.Query("timeframe")
	window := analytics.TimeframeWindow(timeframe, analytics.TimeframeYear, now)

	s := store.New(ctx)

	var current, previous []models.Order
	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		current, err = s.OrdersInWindow(laundryID, window)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.OrdersInPreviousWindow(laundryID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order value analytics"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeAOV(current, previous, timeframe, now))
}

// ProductsOverviewHandler builds the product performance report.
func ProductsOverviewHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	laundryID, ok := adminLaundryID(c)
	if !ok {
		return
	}

	s := store.New(ctx)
	products, err := s.ProductsWithSales(laundryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product analytics"})
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeProductsOverview(products, time.Now()))
}
