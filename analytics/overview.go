package analytics

import (
	"github.com/WashLinkHQ/washlink-go/models"
)

// ComputeOverview builds the admin analytics overview for a window from the
// window's orders and the previous equal-length period's orders.
func ComputeOverview(orders, previousOrders []models.Order, window Window) *models.AnalyticsOverview {
	agg := Aggregate(orders, window)
	previous := Aggregate(previousOrders, window.Previous())

	daily := DailySeries(orders, window)
	hourly := HourlyDistribution(orders)
	customerAggs := AggregateByCustomer(orders)

	overview := &models.AnalyticsOverview{
		Period: models.PeriodInfo{
			StartDate: window.Start,
			EndDate:   window.End,
			Days:      window.Days(),
		},
		Metrics: agg.Metrics,
		Growth: models.Growth{
			RevenueGrowth:         GrowthRate(agg.Metrics.TotalRevenue, previous.Metrics.TotalRevenue),
			OrderGrowth:           GrowthRate(float64(agg.Metrics.TotalOrders), float64(previous.Metrics.TotalOrders)),
			PreviousPeriodRevenue: previous.Metrics.TotalRevenue,
			PreviousPeriodOrders:  previous.Metrics.TotalOrders,
		},
		StatusCounts: agg.StatusCounts,
		Categories:   agg.Categories,
		DailySeries:  daily,
		HourlySeries: hourly,
		TopCustomers: TopCustomers(customerAggs, 10),
		PeakHours:    PeakHours(hourly, 5),
	}

	if len(agg.Categories) > 0 {
		overview.TopCategory = agg.Categories[0].Category
	} else {
		overview.TopCategory = "No categories"
	}

	overview.Insights.ConversionRate = 0
	if agg.Metrics.TotalOrders > 0 {
		overview.Insights.ConversionRate = float64(agg.Metrics.CompletedOrders) / float64(agg.Metrics.TotalOrders) * 100
	}
	if len(daily) > 0 {
		busiest, richest := daily[0], daily[0]
		totalDayOrders := 0
		for _, day := range daily {
			if day.Orders > busiest.Orders {
				busiest = day
			}
			if day.Revenue > richest.Revenue {
				richest = day
			}
			totalDayOrders += day.Orders
		}
		overview.Insights.BusiestDay = busiest
		overview.Insights.HighestRevenueDay = richest
		overview.Insights.AverageDailyOrders = float64(totalDayOrders) / float64(len(daily))
	}

	return overview
}
