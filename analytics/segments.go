package analytics

import (
	"sort"

	"github.com/WashLinkHQ/washlink-go/models"
)

// Lifetime segment thresholds. The order-count gate and the spend gate must
// both pass; a customer with one order stays New regardless of spend.
const (
	vipMinOrders     = 5
	vipMinSpend      = 500
	premiumMinOrders = 3
	premiumMinSpend  = 200
	regularMinOrders = 2
)

// Classify assigns a lifetime segment from a customer's total order count
// and spend with the tenant. Never feed it window-scoped figures; windowed
// grouping for the AOV view is ClassifyWindowed.
func Classify(orderCount int, totalSpent float64) models.Segment {
	switch {
	case totalSpent >= vipMinSpend && orderCount >= vipMinOrders:
		return models.SegmentVIP
	case totalSpent >= premiumMinSpend && orderCount >= premiumMinOrders:
		return models.SegmentPremium
	case orderCount >= regularMinOrders:
		return models.SegmentRegular
	default:
		return models.SegmentNew
	}
}

// Windowed spend-frequency groups used only by the AOV by-segment view.
const (
	WindowedNew     = "New Customers"
	WindowedRegular = "Regular Customers"
	WindowedVIP     = "VIP Customers"
)

// ClassifyWindowed groups a customer by order count inside the analyzed
// window alone.
func ClassifyWindowed(windowOrderCount int) string {
	switch {
	case windowOrderCount <= 1:
		return WindowedNew
	case windowOrderCount <= 5:
		return WindowedRegular
	default:
		return WindowedVIP
	}
}

// GrowthRate is the period-over-period growth percentage. It floors to 0
// when the previous period was 0; callers must not read that as "no
// growth" when previous was genuinely zero.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// RetentionRate is the share of customers with more than one order, as a
// percentage. 0 when there are no customers.
func RetentionRate(repeat, distinct int) float64 {
	if distinct == 0 {
		return 0
	}
	return float64(repeat) / float64(distinct) * 100
}

// CustomerAgg is one customer's aggregate over a set of orders (lifetime or
// windowed depending on what was fetched).
type CustomerAgg struct {
	Customer   models.CustomerRef
	Orders     int
	Spent      float64
	FirstOrder int64 // unix seconds of the earliest order
	LastOrder  int64 // unix seconds of the latest order
}

// AggregateByCustomer folds orders into per-customer totals, preserving
// first-seen order for stable downstream ranking.
func AggregateByCustomer(orders []models.Order) []CustomerAgg {
	index := make(map[string]int)
	var aggs []CustomerAgg
	for _, order := range orders {
		i, ok := index[order.CustomerID]
		if !ok {
			i = len(aggs)
			index[order.CustomerID] = i
			aggs = append(aggs, CustomerAgg{Customer: order.Customer})
			aggs[i].Customer.ID = order.CustomerID
		}
		aggs[i].Orders++
		aggs[i].Spent += order.FinalAmount
		ts := order.CreatedAt.Unix()
		if aggs[i].FirstOrder == 0 || ts < aggs[i].FirstOrder {
			aggs[i].FirstOrder = ts
		}
		if ts > aggs[i].LastOrder {
			aggs[i].LastOrder = ts
		}
	}
	return aggs
}

// TopCustomers ranks customer aggregates by spend descending (stable; ties
// keep first-seen order) and returns the first n as report rows.
func TopCustomers(aggs []CustomerAgg, n int) []models.TopCustomer {
	ranked := make([]CustomerAgg, len(aggs))
	copy(ranked, aggs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Spent > ranked[j].Spent
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	top := make([]models.TopCustomer, 0, n)
	for _, agg := range ranked[:n] {
		row := models.TopCustomer{
			ID:         agg.Customer.ID,
			Name:       agg.Customer.DisplayName(),
			Email:      agg.Customer.Email,
			Orders:     agg.Orders,
			TotalSpent: agg.Spent,
		}
		if agg.Orders > 0 {
			row.AverageOrderValue = agg.Spent / float64(agg.Orders)
		}
		top = append(top, row)
	}
	return top
}

// SegmentBreakdown classifies per-customer lifetime aggregates and folds
// them into segment rows with revenue, average spending and share of the
// customer population. Segments are mutually exclusive and exhaustive.
func SegmentBreakdown(aggs []CustomerAgg) []models.SegmentStat {
	index := make(map[models.Segment]int)
	var stats []models.SegmentStat
	for _, agg := range aggs {
		segment := Classify(agg.Orders, agg.Spent)
		i, ok := index[segment]
		if !ok {
			i = len(stats)
			index[segment] = i
			stats = append(stats, models.SegmentStat{Segment: segment})
		}
		stats[i].Count++
		stats[i].Revenue += agg.Spent
	}
	total := len(aggs)
	for i := range stats {
		if stats[i].Count > 0 {
			stats[i].AverageSpending = stats[i].Revenue / float64(stats[i].Count)
		}
		if total > 0 {
			stats[i].Percentage = float64(stats[i].Count) / float64(total) * 100
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AverageSpending > stats[j].AverageSpending
	})
	return stats
}

// PeakHours ranks the hourly distribution by order count descending and
// returns the top n hours.
func PeakHours(hourly []models.HourStat, n int) []models.HourStat {
	ranked := make([]models.HourStat, len(hourly))
	copy(ranked, hourly)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Orders > ranked[j].Orders
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
