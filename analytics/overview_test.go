package analytics

import (
	"testing"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

func TestComputeOverviewGrowth(t *testing.T) {
	window := testWindow()
	current := []models.Order{
		order("c1", "a", models.StatusCompleted, 200, day(0)),
		order("c2", "b", models.StatusCompleted, 100, day(1)),
	}
	previous := []models.Order{
		order("p1", "a", models.StatusCompleted, 150, day(-7)),
	}

	report := ComputeOverview(current, previous, window)

	if report.Growth.RevenueGrowth != 100 {
		t.Errorf("RevenueGrowth = %v, want 100 (300 vs 150)", report.Growth.RevenueGrowth)
	}
	if report.Growth.OrderGrowth != 100 {
		t.Errorf("OrderGrowth = %v, want 100 (2 vs 1)", report.Growth.OrderGrowth)
	}
	if report.Growth.PreviousPeriodRevenue != 150 {
		t.Errorf("PreviousPeriodRevenue = %v, want 150", report.Growth.PreviousPeriodRevenue)
	}
}

func TestComputeOverviewEmptyPrevious(t *testing.T) {
	window := testWindow()
	current := []models.Order{
		order("c1", "a", models.StatusCompleted, 200, day(0)),
	}

	report := ComputeOverview(current, nil, window)
	if report.Growth.RevenueGrowth != 0 {
		t.Errorf("RevenueGrowth = %v, want 0 when previous period is empty", report.Growth.RevenueGrowth)
	}
}

func TestComputeOverviewTopCategory(t *testing.T) {
	window := testWindow()
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 100, day(0), item("o1", "Ironing", 1, 100)),
		order("o2", "b", models.StatusCompleted, 30, day(1), item("o2", "Wash & Fold", 1, 30)),
	}

	report := ComputeOverview(orders, nil, window)
	if report.TopCategory != "Ironing" {
		t.Errorf("TopCategory = %q, want Ironing", report.TopCategory)
	}

	empty := ComputeOverview(nil, nil, window)
	if empty.TopCategory != "No categories" {
		t.Errorf("empty TopCategory = %q, want %q", empty.TopCategory, "No categories")
	}
}

func TestComputeOverviewInsights(t *testing.T) {
	window := Window{
		Start: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
	}
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 100, time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)),
		order("o2", "b", models.StatusPending, 10, time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)),
		order("o3", "c", models.StatusCompleted, 500, time.Date(2026, 8, 22, 11, 0, 0, 0, time.UTC)),
	}

	report := ComputeOverview(orders, nil, window)

	if report.Insights.BusiestDay.Date != "2026-08-21" {
		t.Errorf("BusiestDay = %s, want 2026-08-21", report.Insights.BusiestDay.Date)
	}
	if report.Insights.HighestRevenueDay.Date != "2026-08-22" {
		t.Errorf("HighestRevenueDay = %s, want 2026-08-22", report.Insights.HighestRevenueDay.Date)
	}
	wantConversion := 2.0 / 3 * 100
	if diff := report.Insights.ConversionRate - wantConversion; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ConversionRate = %v, want %v", report.Insights.ConversionRate, wantConversion)
	}
}

func TestComputeOverviewTopCustomersCapped(t *testing.T) {
	window := testWindow()
	var orders []models.Order
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		orders = append(orders, order("o"+id, "cust-"+id, models.StatusCompleted, float64(10+i), day(0)))
	}

	report := ComputeOverview(orders, nil, window)
	if len(report.TopCustomers) != 10 {
		t.Errorf("TopCustomers length = %d, want 10", len(report.TopCustomers))
	}
	if report.TopCustomers[0].TotalSpent != 24 {
		t.Errorf("top spender = %v, want 24", report.TopCustomers[0].TotalSpent)
	}
}
