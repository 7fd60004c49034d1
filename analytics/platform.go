package analytics

import "github.com/WashLinkHQ/washlink-go/models"

// PlatformCounts are the platform-wide scalars the store fetches for one
// month (or all time, for the lifetime fields).
type PlatformCounts struct {
	TotalLaundries   int
	ActiveLaundries  int
	TotalCustomers   int
	TotalOrders      int
	PlatformRevenue  float64
	MonthOrders      int
	MonthRevenue     float64
	MonthCompleted   int
	MonthNewUsers    int
	PendingOrders    int
	PrevMonthOrders  int
	PrevMonthRevenue float64
	PrevMonthUsers   int
}

// ComputePlatformOverview assembles the super-admin dashboard, deriving the
// growth block from the previous month instead of reporting placeholders.
func ComputePlatformOverview(counts PlatformCounts) *models.PlatformOverview {
	report := &models.PlatformOverview{}
	report.Overview.TotalLaundries = counts.TotalLaundries
	report.Overview.TotalUsers = counts.TotalCustomers
	report.Overview.TotalOrders = counts.TotalOrders
	report.Overview.PlatformRevenue = counts.PlatformRevenue

	report.MonthlyStats.MonthlyOrders = counts.MonthOrders
	report.MonthlyStats.MonthlyRevenue = counts.MonthRevenue
	report.MonthlyStats.CompletedOrders = counts.MonthCompleted

	report.Status.ActiveLaundries = counts.ActiveLaundries
	report.Status.SuspendedLaundries = counts.TotalLaundries - counts.ActiveLaundries
	report.Status.PendingOrders = counts.PendingOrders

	report.Growth.OrdersGrowth = GrowthRate(float64(counts.MonthOrders), float64(counts.PrevMonthOrders))
	report.Growth.RevenueGrowth = GrowthRate(counts.MonthRevenue, counts.PrevMonthRevenue)
	report.Growth.UserGrowth = GrowthRate(float64(counts.MonthNewUsers), float64(counts.PrevMonthUsers))

	return report
}
