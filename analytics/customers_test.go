package analytics

import (
	"testing"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

func TestComputeCustomerOverviewMetrics(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	lifetime := []CustomerAgg{
		{Customer: models.CustomerRef{ID: "old"}, Orders: 6, Spent: 600,
			FirstOrder: now.AddDate(0, -6, 0).Unix(), LastOrder: now.AddDate(0, 0, -2).Unix()},
		{Customer: models.CustomerRef{ID: "recent"}, Orders: 2, Spent: 90,
			FirstOrder: now.AddDate(0, 0, -10).Unix(), LastOrder: now.AddDate(0, 0, -1).Unix()},
		{Customer: models.CustomerRef{ID: "dormant"}, Orders: 1, Spent: 30,
			FirstOrder: now.AddDate(0, -3, 0).Unix(), LastOrder: now.AddDate(0, -3, 0).Unix()},
	}
	windowOrders := []models.Order{
		order("w1", "old", models.StatusCompleted, 80, now.AddDate(0, 0, -2)),
		order("w2", "recent", models.StatusCompleted, 40, now.AddDate(0, 0, -1)),
		order("w3", "recent", models.StatusPending, 50, now.AddDate(0, 0, -10)),
	}

	report := ComputeCustomerOverview(lifetime, windowOrders, TimeframeMonth, now)

	if report.Metrics.TotalCustomers != 3 {
		t.Errorf("TotalCustomers = %d, want 3", report.Metrics.TotalCustomers)
	}
	if report.Metrics.ActiveCustomers != 2 {
		t.Errorf("ActiveCustomers = %d, want 2", report.Metrics.ActiveCustomers)
	}
	if report.Metrics.NewCustomersThisPeriod != 1 {
		t.Errorf("NewCustomersThisPeriod = %d, want 1 (only recent joined inside the month)", report.Metrics.NewCustomersThisPeriod)
	}
	if report.Metrics.AverageLTV != 240 {
		t.Errorf("AverageLTV = %v, want 240 (720/3)", report.Metrics.AverageLTV)
	}
	// old and recent have >1 lifetime orders.
	wantRetention := 2.0 / 3 * 100
	if diff := report.Metrics.RetentionRate - wantRetention; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("RetentionRate = %v, want %v", report.Metrics.RetentionRate, wantRetention)
	}
}

func TestComputeCustomerOverviewGrowthChart(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	lifetime := []CustomerAgg{
		{Customer: models.CustomerRef{ID: "a"}, Orders: 3, Spent: 100,
			FirstOrder: now.AddDate(0, 0, -3).Unix(), LastOrder: now.Unix()},
		{Customer: models.CustomerRef{ID: "b"}, Orders: 1, Spent: 20,
			FirstOrder: now.AddDate(0, -12, 0).Unix(), LastOrder: now.AddDate(0, -12, 0).Unix()},
	}

	report := ComputeCustomerOverview(lifetime, nil, TimeframeMonth, now)

	chart := report.Growth.ChartData
	if len(chart) != 4 {
		t.Fatalf("got %d buckets, want 4", len(chart))
	}
	if chart[3].NewCustomers != 1 {
		t.Errorf("last bucket NewCustomers = %d, want 1", chart[3].NewCustomers)
	}
	// b joined a year ago so every bucket's cumulative total includes it.
	if chart[0].TotalCustomers != 1 || chart[3].TotalCustomers != 2 {
		t.Errorf("cumulative totals = %d..%d, want 1..2", chart[0].TotalCustomers, chart[3].TotalCustomers)
	}
	if len(report.Insights.AcquisitionTrend) != 3 {
		t.Errorf("AcquisitionTrend length = %d, want 3", len(report.Insights.AcquisitionTrend))
	}
}

func TestComputeAOV(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	current := []models.Order{
		order("c1", "a", models.StatusCompleted, 120, now.AddDate(0, 0, -1),
			item("c1", "Ironing", 1, 120)),
		order("c2", "a", models.StatusCompleted, 80, now.AddDate(0, 0, -2),
			item("c2", "Wash & Fold", 2, 80)),
	}
	previous := []models.Order{
		order("p1", "b", models.StatusCompleted, 50, now.AddDate(0, 0, -40)),
	}

	report := ComputeAOV(current, previous, TimeframeMonth, now)

	if report.Current.AOV != 100 {
		t.Errorf("current AOV = %v, want 100", report.Current.AOV)
	}
	if report.Comparison.PreviousAOV != 50 {
		t.Errorf("previous AOV = %v, want 50", report.Comparison.PreviousAOV)
	}
	if report.Current.Growth != 100 {
		t.Errorf("growth = %v, want 100", report.Current.Growth)
	}
	if report.Comparison.ImprovementAmount != 50 {
		t.Errorf("improvement = %v, want 50", report.Comparison.ImprovementAmount)
	}
	if len(report.Trends) != 4 {
		t.Errorf("trend buckets = %d, want 4 for month timeframe", len(report.Trends))
	}
}

func TestComputeAOVSegmentsFixedOrder(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	// 6 orders: windowed VIP. 1 order: windowed New.
	var orders []models.Order
	for i := 0; i < 6; i++ {
		orders = append(orders, order("v"+string(rune('0'+i)), "heavy", models.StatusCompleted, 10, now.AddDate(0, 0, -i-1)))
	}
	orders = append(orders, order("n1", "once", models.StatusCompleted, 99, now.AddDate(0, 0, -1)))

	report := ComputeAOV(orders, nil, TimeframeMonth, now)

	if len(report.BySegment) != 3 {
		t.Fatalf("got %d segments, want 3", len(report.BySegment))
	}
	wantOrder := []string{WindowedNew, WindowedRegular, WindowedVIP}
	for i, want := range wantOrder {
		if report.BySegment[i].Segment != want {
			t.Errorf("segment[%d] = %q, want %q", i, report.BySegment[i].Segment, want)
		}
	}
	if report.BySegment[0].Orders != 1 || report.BySegment[0].Revenue != 99 {
		t.Errorf("New segment = %+v, want 1 order / 99 revenue", report.BySegment[0])
	}
	if report.BySegment[2].Orders != 6 || report.BySegment[2].AOV != 10 {
		t.Errorf("VIP segment = %+v, want 6 orders / AOV 10", report.BySegment[2])
	}
	if report.BySegment[1].Orders != 0 {
		t.Errorf("Regular segment should be empty, got %+v", report.BySegment[1])
	}
}

func TestComputeAOVByCategory(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 100, now.AddDate(0, 0, -1),
			item("o1", "Ironing", 1, 60),
			item("o1", "", 1, 40)),
		order("o2", "b", models.StatusCompleted, 30, now.AddDate(0, 0, -2),
			item("o2", "Ironing", 1, 30)),
	}

	report := ComputeAOV(orders, nil, TimeframeMonth, now)

	byName := make(map[string]models.CategoryAOV)
	for _, row := range report.ByCategory {
		byName[row.Category] = row
	}

	ironing := byName["Ironing"]
	if ironing.Orders != 2 || ironing.Revenue != 90 || ironing.AOV != 45 {
		t.Errorf("Ironing = %+v, want 2 orders / 90 revenue / 45 AOV", ironing)
	}
	other := byName[OtherCategory]
	if other.Orders != 1 || other.AOV != 40 {
		t.Errorf("Other = %+v, want 1 order / 40 AOV", other)
	}
}
