// Package analytics reduces order rows into the segmented, time-bucketed
// business metrics served by the dashboard endpoints. Everything in this
// package is a pure function over rows already fetched into memory; the
// store package owns all data access.
package analytics

import (
	"sort"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

// OtherCategory is the bucket for line items whose product has no category.
const OtherCategory = "Other"

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. The end boundary is
// included so orders created at request time are never dropped.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days counts the calendar days the window touches, both ends inclusive. A
// window that ends one second before midnight spans the same days as one
// ending at midnight.
func (w Window) Days() int {
	start := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, w.Start.Location())
	end := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, w.End.Location())
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// Previous returns the equal-length window immediately before this one.
func (w Window) Previous() Window {
	return Window{Start: w.Start.Add(-w.End.Sub(w.Start)), End: w.Start}
}

// Aggregation is the result of one pass over an order set.
type Aggregation struct {
	Metrics      models.Metrics
	StatusCounts map[string]int
	Categories   []models.CategoryStat
}

// Aggregate reduces orders into scalar metrics, a status distribution and a
// category performance breakdown. Total revenue sums finalAmount over every
// order regardless of status; completed revenue is restricted to
// COMPLETED/DELIVERED. Orders without line items count toward the scalars
// but not the category breakdown. New customers are those whose account was
// created inside the window.
func Aggregate(orders []models.Order, window Window) Aggregation {
	agg := Aggregation{
		StatusCounts: make(map[string]int),
		Categories:   []models.CategoryStat{},
	}

	customers := make(map[string]bool)
	newCustomers := make(map[string]bool)
	orderCounts := make(map[string]int)

	type catAccum struct {
		orders   map[string]bool
		revenue  float64
		quantity int
	}
	categories := make(map[string]*catAccum)

	for _, order := range orders {
		agg.Metrics.TotalOrders++
		agg.Metrics.TotalRevenue += order.FinalAmount
		if order.Status.IsCompleted() {
			agg.Metrics.CompletedOrders++
			agg.Metrics.CompletedRevenue += order.FinalAmount
		}
		agg.StatusCounts[string(order.Status)]++

		customers[order.CustomerID] = true
		orderCounts[order.CustomerID]++
		if window.Contains(order.Customer.CreatedAt) {
			newCustomers[order.CustomerID] = true
		}

		for _, item := range order.Items {
			category := item.Category
			if category == "" {
				category = OtherCategory
			}
			accum := categories[category]
			if accum == nil {
				accum = &catAccum{orders: make(map[string]bool)}
				categories[category] = accum
			}
			accum.orders[order.ID] = true
			accum.revenue += item.TotalPrice
			accum.quantity += item.Quantity
		}
	}

	agg.Metrics.UniqueCustomers = len(customers)
	agg.Metrics.NewCustomers = len(newCustomers)
	for _, count := range orderCounts {
		if count > 1 {
			agg.Metrics.RepeatCustomers++
		}
	}
	if agg.Metrics.TotalOrders > 0 {
		agg.Metrics.AverageOrderValue = agg.Metrics.TotalRevenue / float64(agg.Metrics.TotalOrders)
	}
	agg.Metrics.CustomerRetentionRate = RetentionRate(agg.Metrics.RepeatCustomers, agg.Metrics.UniqueCustomers)

	for category, accum := range categories {
		stat := models.CategoryStat{
			Category: category,
			Orders:   len(accum.orders),
			Revenue:  accum.revenue,
			Quantity: accum.quantity,
		}
		if agg.Metrics.TotalRevenue > 0 {
			stat.Percentage = accum.revenue / agg.Metrics.TotalRevenue * 100
		}
		agg.Categories = append(agg.Categories, stat)
	}
	// Deterministic order before the stable revenue sort.
	sort.Slice(agg.Categories, func(i, j int) bool {
		return agg.Categories[i].Category < agg.Categories[j].Category
	})
	sort.SliceStable(agg.Categories, func(i, j int) bool {
		return agg.Categories[i].Revenue > agg.Categories[j].Revenue
	})

	return agg
}
