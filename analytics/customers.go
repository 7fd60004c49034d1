package analytics

import (
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

// ComputeCustomerOverview builds the admin customer analytics report.
// lifetime carries one aggregate per customer over every order they ever
// placed with the tenant (segments are lifetime-scoped here); windowOrders
// are the tenant's orders inside the timeframe window and drive the
// active-customer figures and the growth chart.
func ComputeCustomerOverview(lifetime []CustomerAgg, windowOrders []models.Order, timeframe string, now time.Time) *models.CustomerOverview {
	name, n, lengthDays := TimeframeSpec(timeframe, TimeframeMonth)
	window := Window{Start: now.Add(-time.Duration(n*lengthDays) * 24 * time.Hour), End: now}

	report := &models.CustomerOverview{}
	report.Period = models.PeriodInfo{Timeframe: name, StartDate: window.Start, EndDate: now}

	totalCustomers := len(lifetime)
	report.Metrics.TotalCustomers = totalCustomers

	activeCustomers := make(map[string]bool)
	for _, order := range windowOrders {
		activeCustomers[order.CustomerID] = true
	}
	report.Metrics.ActiveCustomers = len(activeCustomers)

	var totalRevenue float64
	var totalOrders, repeatCustomers, newThisPeriod int
	for _, agg := range lifetime {
		totalRevenue += agg.Spent
		totalOrders += agg.Orders
		if agg.Orders > 1 {
			repeatCustomers++
		}
		if window.Contains(time.Unix(agg.FirstOrder, 0)) {
			newThisPeriod++
		}
	}
	report.Metrics.NewCustomersThisPeriod = newThisPeriod
	if totalCustomers > 0 {
		report.Metrics.AverageLTV = totalRevenue / float64(totalCustomers)
	}
	report.Metrics.RetentionRate = RetentionRate(repeatCustomers, totalCustomers)

	// Growth chart: acquisition per bucket from first-order dates, activity
	// per bucket from in-window orders, cumulative totals up to bucket end.
	buckets := MakeBuckets(now, n, lengthDays)
	newPerBucket := make([]int, n)
	activePerBucket := make([]map[string]bool, n)
	for i := range activePerBucket {
		activePerBucket[i] = make(map[string]bool)
	}
	for _, agg := range lifetime {
		if idx := BucketIndex(now, n, lengthDays, time.Unix(agg.FirstOrder, 0)); idx >= 0 {
			newPerBucket[idx]++
		}
	}
	for _, order := range windowOrders {
		if idx := BucketIndex(now, n, lengthDays, order.CreatedAt); idx >= 0 {
			activePerBucket[idx][order.CustomerID] = true
		}
	}

	chart := make([]models.BucketStat, n)
	for i, b := range buckets {
		cumulative := 0
		for _, agg := range lifetime {
			if !time.Unix(agg.FirstOrder, 0).After(b.End) {
				cumulative++
			}
		}
		chart[i] = models.BucketStat{
			Period:          BucketLabel(name, b, i, n),
			Start:           b.Start,
			End:             b.End,
			NewCustomers:    newPerBucket[i],
			ActiveCustomers: len(activePerBucket[i]),
			TotalCustomers:  cumulative,
		}
	}
	report.Growth.PeriodGrowth = newThisPeriod
	if totalCustomers > 0 {
		report.Growth.GrowthRate = float64(newThisPeriod) / float64(totalCustomers) * 100
	}
	report.Growth.ChartData = chart

	report.Segments = SegmentBreakdown(lifetime)

	if totalCustomers > 0 {
		report.Insights.AverageOrdersPerCustomer = float64(totalOrders) / float64(totalCustomers)
	}
	if len(report.Segments) > 0 {
		report.Insights.TopSpendingSegment = report.Segments[0]
	}
	trendFrom := len(chart) - 3
	if trendFrom < 0 {
		trendFrom = 0
	}
	for _, b := range chart[trendFrom:] {
		report.Insights.AcquisitionTrend = append(report.Insights.AcquisitionTrend, b.NewCustomers)
	}

	return report
}
