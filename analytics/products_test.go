package analytics

import (
	"testing"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

func product(id, name, category string, price float64) models.Product {
	return models.Product{ID: id, LaundryID: "laundry-1", Name: name, Category: category, Price: price, IsActive: true}
}

func TestComputeProductsOverviewCompletedOnly(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	products := []ProductSales{
		{
			Product: product("p1", "Shirt", "Ironing", 10),
			Items: []SoldItem{
				{OrderID: "o1", OrderStatus: models.StatusCompleted, OrderCreatedAt: now.AddDate(0, 0, -3), Quantity: 2, TotalPrice: 20},
				{OrderID: "o2", OrderStatus: models.StatusPending, OrderCreatedAt: now.AddDate(0, 0, -2), Quantity: 5, TotalPrice: 50},
			},
		},
		{
			Product: product("p2", "Blanket", "Wash & Fold", 30),
		},
	}

	report := ComputeProductsOverview(products, now)

	if report.Metrics.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d, want 2", report.Metrics.TotalProducts)
	}
	if report.Metrics.TotalRevenue != 20 {
		t.Errorf("TotalRevenue = %v, want 20 (pending order excluded)", report.Metrics.TotalRevenue)
	}
	if report.Metrics.TotalQuantitySold != 2 {
		t.Errorf("TotalQuantitySold = %d, want 2", report.Metrics.TotalQuantitySold)
	}
	if report.Metrics.AverageProductPrice != 20 {
		t.Errorf("AverageProductPrice = %v, want 20", report.Metrics.AverageProductPrice)
	}

	// p1 has sales (any status), p2 has none.
	if report.Insights.ConversionRate != 50 {
		t.Errorf("ConversionRate = %v, want 50", report.Insights.ConversionRate)
	}
}

func TestComputeProductsOverviewCategories(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	products := []ProductSales{
		{
			Product: product("p1", "Shirt", "Ironing", 10),
			Items: []SoldItem{
				{OrderID: "o1", OrderStatus: models.StatusDelivered, OrderCreatedAt: now.AddDate(0, 0, -1), Quantity: 1, TotalPrice: 10},
			},
		},
		// Uncategorized products never form a category row.
		{
			Product: product("p2", "Mystery", "", 5),
			Items: []SoldItem{
				{OrderID: "o2", OrderStatus: models.StatusDelivered, OrderCreatedAt: now.AddDate(0, 0, -1), Quantity: 1, TotalPrice: 5},
			},
		},
	}

	report := ComputeProductsOverview(products, now)
	if report.Categories.TotalCategories != 1 {
		t.Errorf("TotalCategories = %d, want 1", report.Categories.TotalCategories)
	}
	if report.Categories.MostPopular != "Ironing" {
		t.Errorf("MostPopular = %q, want Ironing", report.Categories.MostPopular)
	}
}

func TestComputeProductsOverviewMonthlyTrend(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	ancient := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)

	products := []ProductSales{
		{
			Product: product("p1", "Shirt", "Ironing", 10),
			Items: []SoldItem{
				{OrderID: "o1", OrderStatus: models.StatusCompleted, OrderCreatedAt: thisMonth, Quantity: 1, TotalPrice: 100},
				{OrderID: "o2", OrderStatus: models.StatusCompleted, OrderCreatedAt: lastMonth, Quantity: 1, TotalPrice: 40},
				{OrderID: "o3", OrderStatus: models.StatusCompleted, OrderCreatedAt: ancient, Quantity: 1, TotalPrice: 999},
			},
		},
	}

	report := ComputeProductsOverview(products, now)

	months := report.Trends.MonthlyRevenue
	if len(months) != 6 {
		t.Fatalf("got %d months, want 6", len(months))
	}
	if months[5].Month != "Aug 26" || months[5].Revenue != 100 {
		t.Errorf("current month = %+v, want Aug 26 / 100", months[5])
	}
	if months[4].Month != "Jul 26" || months[4].Revenue != 40 {
		t.Errorf("previous month = %+v, want Jul 26 / 40", months[4])
	}
	if months[0].Revenue != 0 {
		t.Errorf("oldest month revenue = %v, want 0 (ancient sale outside range)", months[0].Revenue)
	}
	if report.Trends.RevenueGrowth != 60 {
		t.Errorf("RevenueGrowth = %v, want 60 (100 - 40)", report.Trends.RevenueGrowth)
	}
}

func TestComputePlatformOverviewGrowth(t *testing.T) {
	counts := PlatformCounts{
		TotalLaundries:   10,
		ActiveLaundries:  8,
		TotalCustomers:   500,
		TotalOrders:      2000,
		PlatformRevenue:  90000,
		MonthOrders:      130,
		MonthRevenue:     6000,
		MonthCompleted:   110,
		MonthNewUsers:    25,
		PendingOrders:    12,
		PrevMonthOrders:  100,
		PrevMonthRevenue: 5000,
		PrevMonthUsers:   20,
	}

	report := ComputePlatformOverview(counts)

	if report.Status.SuspendedLaundries != 2 {
		t.Errorf("SuspendedLaundries = %d, want 2", report.Status.SuspendedLaundries)
	}
	if report.Growth.OrdersGrowth != 30 {
		t.Errorf("OrdersGrowth = %v, want 30", report.Growth.OrdersGrowth)
	}
	if report.Growth.RevenueGrowth != 20 {
		t.Errorf("RevenueGrowth = %v, want 20", report.Growth.RevenueGrowth)
	}
	if report.Growth.UserGrowth != 25 {
		t.Errorf("UserGrowth = %v, want 25", report.Growth.UserGrowth)
	}
}

func TestComputePlatformOverviewZeroPreviousMonth(t *testing.T) {
	report := ComputePlatformOverview(PlatformCounts{MonthOrders: 50, MonthRevenue: 1000})
	if report.Growth.OrdersGrowth != 0 || report.Growth.RevenueGrowth != 0 {
		t.Errorf("growth = %+v, want zeros when previous month empty", report.Growth)
	}
}
