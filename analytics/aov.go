package analytics

import (
	"sort"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

// ComputeAOV builds the average-order-value dashboard from the timeframe
// window's orders and the previous equal-length period's orders.
func ComputeAOV(orders, previousOrders []models.Order, timeframe string, now time.Time) *models.AOVAnalysis {
	name, n, lengthDays := TimeframeSpec(timeframe, TimeframeYear)
	window := Window{Start: now.Add(-time.Duration(n*lengthDays) * 24 * time.Hour), End: now}

	report := &models.AOVAnalysis{}
	report.Period = models.PeriodInfo{Timeframe: name, StartDate: window.Start, EndDate: now}

	var totalRevenue float64
	for _, order := range orders {
		totalRevenue += order.FinalAmount
	}
	currentAOV := 0.0
	if len(orders) > 0 {
		currentAOV = totalRevenue / float64(len(orders))
	}

	var previousRevenue float64
	for _, order := range previousOrders {
		previousRevenue += order.FinalAmount
	}
	previousAOV := 0.0
	if len(previousOrders) > 0 {
		previousAOV = previousRevenue / float64(len(previousOrders))
	}
	growth := GrowthRate(currentAOV, previousAOV)

	report.Current.AOV = currentAOV
	report.Current.TotalOrders = len(orders)
	report.Current.TotalRevenue = totalRevenue
	report.Current.Growth = growth
	report.Comparison.PreviousAOV = previousAOV
	report.Comparison.GrowthPercentage = growth
	report.Comparison.ImprovementAmount = currentAOV - previousAOV

	report.Trends = TrendSeries(orders, now, name, n, lengthDays)

	// AOV per category: category revenue over the distinct orders touching
	// that category.
	type catAccum struct {
		revenue float64
		orders  map[string]bool
	}
	categories := make(map[string]*catAccum)
	for _, order := range orders {
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
			accum.revenue += item.TotalPrice
			accum.orders[order.ID] = true
		}
	}
	for category, accum := range categories {
		row := models.CategoryAOV{
			Category: category,
			Orders:   len(accum.orders),
			Revenue:  accum.revenue,
		}
		if len(accum.orders) > 0 {
			row.AOV = accum.revenue / float64(len(accum.orders))
		}
		report.ByCategory = append(report.ByCategory, row)
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		return report.ByCategory[i].Category < report.ByCategory[j].Category
	})
	sort.SliceStable(report.ByCategory, func(i, j int) bool {
		return report.ByCategory[i].AOV > report.ByCategory[j].AOV
	})

	// AOV per windowed spend-frequency segment. Grouping is by order count
	// inside this window only; lifetime segments never feed this view.
	type segAccum struct {
		orders  int
		revenue float64
	}
	segments := map[string]*segAccum{
		WindowedNew:     {},
		WindowedRegular: {},
		WindowedVIP:     {},
	}
	for _, agg := range AggregateByCustomer(orders) {
		accum := segments[ClassifyWindowed(agg.Orders)]
		accum.orders += agg.Orders
		accum.revenue += agg.Spent
	}
	for _, segment := range []string{WindowedNew, WindowedRegular, WindowedVIP} {
		accum := segments[segment]
		row := models.SegmentAOV{
			Segment: segment,
			Orders:  accum.orders,
			Revenue: accum.revenue,
		}
		if accum.orders > 0 {
			row.AOV = accum.revenue / float64(accum.orders)
		}
		report.BySegment = append(report.BySegment, row)
	}

	return report
}
