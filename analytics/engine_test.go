package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func testWindow() Window {
	return Window{Start: day(-5), End: day(5)}
}

func order(id, customerID string, status models.OrderStatus, amount float64, created time.Time, items ...models.LineItem) models.Order {
	return models.Order{
		ID:          id,
		OrderNumber: "WL-" + id,
		LaundryID:   "laundry-1",
		CustomerID:  customerID,
		Status:      status,
		FinalAmount: amount,
		CreatedAt:   created,
		Customer: models.CustomerRef{
			ID:        customerID,
			Email:     customerID + "@example.com",
			CreatedAt: day(-100),
		},
		Items: items,
	}
}

func item(orderID, category string, quantity int, total float64) models.LineItem {
	return models.LineItem{
		OrderID:    orderID,
		Category:   category,
		Quantity:   quantity,
		Price:      total / float64(quantity),
		TotalPrice: total,
	}
}

func TestAggregateMetrics(t *testing.T) {
	orders := []models.Order{
		order("o1", "alice", models.StatusCompleted, 100, day(0), item("o1", "Wash & Fold", 2, 100)),
		order("o2", "alice", models.StatusDelivered, 300, day(1), item("o2", "Dry Cleaning", 1, 300)),
		order("o3", "bob", models.StatusPending, 50, day(2), item("o3", "", 1, 50)),
	}

	agg := Aggregate(orders, testWindow())
	m := agg.Metrics

	if m.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", m.TotalOrders)
	}
	if m.TotalRevenue != 450 {
		t.Errorf("TotalRevenue = %v, want 450 (all statuses count)", m.TotalRevenue)
	}
	if m.CompletedOrders != 2 {
		t.Errorf("CompletedOrders = %d, want 2", m.CompletedOrders)
	}
	if m.CompletedRevenue != 400 {
		t.Errorf("CompletedRevenue = %v, want 400", m.CompletedRevenue)
	}
	if m.UniqueCustomers != 2 {
		t.Errorf("UniqueCustomers = %d, want 2", m.UniqueCustomers)
	}
	if m.AverageOrderValue != 150 {
		t.Errorf("AverageOrderValue = %v, want 150", m.AverageOrderValue)
	}
	if m.RepeatCustomers != 1 {
		t.Errorf("RepeatCustomers = %d, want 1", m.RepeatCustomers)
	}
	if m.CustomerRetentionRate != 50 {
		t.Errorf("CustomerRetentionRate = %v, want 50", m.CustomerRetentionRate)
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil, testWindow())
	m := agg.Metrics

	if m.TotalOrders != 0 || m.TotalRevenue != 0 {
		t.Errorf("empty set: got %d orders, %v revenue", m.TotalOrders, m.TotalRevenue)
	}
	if m.AverageOrderValue != 0 {
		t.Errorf("AverageOrderValue = %v, want 0 for empty set", m.AverageOrderValue)
	}
	if m.CustomerRetentionRate != 0 {
		t.Errorf("CustomerRetentionRate = %v, want 0 for empty set", m.CustomerRetentionRate)
	}
	if len(agg.Categories) != 0 {
		t.Errorf("Categories = %v, want empty", agg.Categories)
	}
}

func TestAggregateAOVIdentity(t *testing.T) {
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 33.33, day(0)),
		order("o2", "b", models.StatusPending, 66.67, day(1)),
		order("o3", "c", models.StatusCanceled, 10.50, day(2)),
	}

	m := Aggregate(orders, testWindow()).Metrics
	if got := m.AverageOrderValue * float64(m.TotalOrders); math.Abs(got-m.TotalRevenue) > 1e-9 {
		t.Errorf("AOV*orders = %v, want %v", got, m.TotalRevenue)
	}
}

func TestAggregateStatusCounts(t *testing.T) {
	orders := []models.Order{
		order("o1", "a", models.StatusPending, 10, day(0)),
		order("o2", "b", models.StatusPending, 10, day(0)),
		order("o3", "c", models.StatusCanceled, 10, day(0)),
		order("o4", "d", models.StatusInProgress, 10, day(0)),
	}

	agg := Aggregate(orders, testWindow())
	want := map[string]int{"PENDING": 2, "CANCELED": 1, "IN_PROGRESS": 1}
	for status, count := range want {
		if agg.StatusCounts[status] != count {
			t.Errorf("StatusCounts[%s] = %d, want %d", status, agg.StatusCounts[status], count)
		}
	}
	total := 0
	for _, count := range agg.StatusCounts {
		total += count
	}
	if total != len(orders) {
		t.Errorf("status counts sum to %d, want %d", total, len(orders))
	}
}

func TestAggregateCategories(t *testing.T) {
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 150, day(0),
			item("o1", "Wash & Fold", 2, 60),
			item("o1", "Ironing", 3, 90)),
		order("o2", "b", models.StatusCompleted, 40, day(1),
			item("o2", "Wash & Fold", 1, 40)),
		// No category on the product lands in "Other".
		order("o3", "c", models.StatusPending, 25, day(2),
			item("o3", "", 1, 25)),
		// No items at all: counted in scalars, absent from categories.
		order("o4", "d", models.StatusPending, 99, day(3)),
	}

	agg := Aggregate(orders, testWindow())

	byName := make(map[string]models.CategoryStat)
	for _, cat := range agg.Categories {
		byName[cat.Category] = cat
	}

	wf, ok := byName["Wash & Fold"]
	if !ok {
		t.Fatal("missing Wash & Fold category")
	}
	if wf.Orders != 2 {
		t.Errorf("Wash & Fold orders = %d, want 2 (distinct orders)", wf.Orders)
	}
	if wf.Revenue != 100 {
		t.Errorf("Wash & Fold revenue = %v, want 100", wf.Revenue)
	}
	if wf.Quantity != 3 {
		t.Errorf("Wash & Fold quantity = %d, want 3", wf.Quantity)
	}

	other, ok := byName[OtherCategory]
	if !ok {
		t.Fatal("uncategorized item not grouped under Other")
	}
	if other.Revenue != 25 {
		t.Errorf("Other revenue = %v, want 25", other.Revenue)
	}

	if len(agg.Categories) != 3 {
		t.Errorf("got %d categories, want 3 (itemless order excluded)", len(agg.Categories))
	}

	// Percentages are shares of total revenue, so the itemless order keeps
	// the sum under 100 here.
	var pctSum float64
	for _, cat := range agg.Categories {
		pctSum += cat.Percentage
	}
	wantPct := (60.0 + 90 + 40 + 25) / 314.0 * 100
	if math.Abs(pctSum-wantPct) > 1e-9 {
		t.Errorf("percentage sum = %v, want %v", pctSum, wantPct)
	}

	// Sorted by revenue descending.
	for i := 1; i < len(agg.Categories); i++ {
		if agg.Categories[i].Revenue > agg.Categories[i-1].Revenue {
			t.Errorf("categories not sorted by revenue: %v", agg.Categories)
		}
	}
}

func TestAggregateNewCustomers(t *testing.T) {
	window := testWindow()
	inside := order("o1", "newbie", models.StatusPending, 10, day(0))
	inside.Customer.CreatedAt = day(1)
	outside := order("o2", "veteran", models.StatusPending, 10, day(0))

	agg := Aggregate([]models.Order{inside, outside}, window)
	if agg.Metrics.NewCustomers != 1 {
		t.Errorf("NewCustomers = %d, want 1", agg.Metrics.NewCustomers)
	}
}

func TestWindowPrevious(t *testing.T) {
	w := Window{Start: day(0), End: day(10)}
	prev := w.Previous()
	if !prev.End.Equal(w.Start) {
		t.Errorf("previous window end = %v, want %v", prev.End, w.Start)
	}
	if !prev.Start.Equal(day(-10)) {
		t.Errorf("previous window start = %v, want %v", prev.Start, day(-10))
	}
}

func TestWindowDays(t *testing.T) {
	midnight := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		w    Window
		want int
	}{
		{"midday to midday spans both end days", Window{Start: day(0), End: day(7)}, 8},
		{"calendar week selection", Window{Start: midnight, End: midnight.AddDate(0, 0, 7).Add(-time.Second)}, 7},
		{"end of day counts like midnight of the next", Window{Start: midnight, End: midnight.AddDate(0, 0, 1).Add(-time.Second)}, 1},
		{"single instant", Window{Start: day(0), End: day(0)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Days(); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}
