package analytics

import (
	"fmt"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

// Timeframe presets: how far back a report looks and how its trend series
// is bucketed.
const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

// TimeframeSpec resolves a timeframe name to bucket count and bucket length
// in days. Unknown names fall back to the given default.
func TimeframeSpec(timeframe, fallback string) (name string, buckets, lengthDays int) {
	switch timeframe {
	case TimeframeWeek:
		return TimeframeWeek, 7, 1
	case TimeframeMonth:
		return TimeframeMonth, 4, 7
	case TimeframeYear:
		return TimeframeYear, 12, 30
	default:
		if fallback != "" && fallback != timeframe {
			return TimeframeSpec(fallback, "")
		}
		return TimeframeMonth, 4, 7
	}
}

// TimeframeWindow is the full window covered by a timeframe's buckets.
func TimeframeWindow(timeframe, fallback string, now time.Time) Window {
	_, n, length := TimeframeSpec(timeframe, fallback)
	return Window{Start: now.Add(-time.Duration(n*length) * 24 * time.Hour), End: now}
}

// Bucket is one sub-interval of a window, [Start, End); the most recent
// bucket additionally includes End itself.
type Bucket struct {
	Start time.Time
	End   time.Time
	Last  bool
}

// MakeBuckets partitions the window ending at now into n chronological
// buckets of lengthDays each, counting backward from now.
func MakeBuckets(now time.Time, n, lengthDays int) []Bucket {
	length := time.Duration(lengthDays) * 24 * time.Hour
	buckets := make([]Bucket, n)
	for i := 0; i < n; i++ {
		buckets[i] = Bucket{
			Start: now.Add(-time.Duration(n-i) * length),
			End:   now.Add(-time.Duration(n-i-1) * length),
			Last:  i == n-1,
		}
	}
	return buckets
}

// BucketIndex assigns t to one of n buckets of the given length ending at
// now, in a single arithmetic step. It returns -1 when t is outside the
// window. A timestamp exactly on a boundary belongs to the later bucket;
// a timestamp equal to now belongs to the last bucket.
func BucketIndex(now time.Time, n, lengthDays int, t time.Time) int {
	if t.After(now) {
		return -1
	}
	length := time.Duration(lengthDays) * 24 * time.Hour
	elapsed := now.Sub(t)
	idx := n - 1 - int(elapsed/length)
	if elapsed > 0 && elapsed%length == 0 {
		// Left-closed boundary: the order opens the later bucket.
		idx++
	}
	if idx < 0 {
		return -1
	}
	return idx
}

// BucketLabel formats a bucket for presentation. The core exposes raw
// intervals; this is the shared label convention the handlers use.
func BucketLabel(timeframe string, b Bucket, index, total int) string {
	switch timeframe {
	case TimeframeYear:
		return b.Start.Format("Jan 06")
	case TimeframeMonth:
		return fmt.Sprintf("Week %d", index+1)
	default:
		return b.Start.Format("Mon")
	}
}

// TrendSeries buckets orders by creation time into n periods ending at now
// and computes per-bucket order count, revenue, distinct customers and AOV.
// Orders are assigned in one pass; no bucket re-scans the full set.
func TrendSeries(orders []models.Order, now time.Time, timeframe string, n, lengthDays int) []models.BucketStat {
	buckets := MakeBuckets(now, n, lengthDays)
	revenue := make([]float64, n)
	counts := make([]int, n)
	customers := make([]map[string]bool, n)
	for i := range customers {
		customers[i] = make(map[string]bool)
	}

	for _, order := range orders {
		idx := BucketIndex(now, n, lengthDays, order.CreatedAt)
		if idx < 0 {
			continue
		}
		counts[idx]++
		revenue[idx] += order.FinalAmount
		customers[idx][order.CustomerID] = true
	}

	series := make([]models.BucketStat, n)
	for i, b := range buckets {
		stat := models.BucketStat{
			Period:    BucketLabel(timeframe, b, i, n),
			Start:     b.Start,
			End:       b.End,
			Orders:    counts[i],
			Revenue:   revenue[i],
			Customers: len(customers[i]),
		}
		if counts[i] > 0 {
			stat.AverageOrderValue = revenue[i] / float64(counts[i])
		}
		series[i] = stat
	}
	return series
}

// DailySeries buckets orders by calendar day across the window and computes
// the per-day stats used by the overview report. Days with no orders still
// appear with zero values.
func DailySeries(orders []models.Order, window Window) []models.DayStat {
	type dayAccum struct {
		orders    int
		revenue   float64
		customers map[string]bool
	}
	byDay := make(map[string]*dayAccum)
	for _, order := range orders {
		if !window.Contains(order.CreatedAt) {
			continue
		}
		key := order.CreatedAt.UTC().Format("2006-01-02")
		accum := byDay[key]
		if accum == nil {
			accum = &dayAccum{customers: make(map[string]bool)}
			byDay[key] = accum
		}
		accum.orders++
		accum.revenue += order.FinalAmount
		accum.customers[order.CustomerID] = true
	}

	var series []models.DayStat
	for day := window.Start.UTC().Truncate(24 * time.Hour); !day.After(window.End); day = day.Add(24 * time.Hour) {
		key := day.Format("2006-01-02")
		stat := models.DayStat{Date: key}
		if accum := byDay[key]; accum != nil {
			stat.Orders = accum.orders
			stat.Revenue = accum.revenue
			stat.Customers = len(accum.customers)
			if accum.orders > 0 {
				stat.AverageOrderValue = accum.revenue / float64(accum.orders)
			}
		}
		series = append(series, stat)
	}
	return series
}

// HourlyDistribution counts orders per hour of day, ascending by hour.
func HourlyDistribution(orders []models.Order) []models.HourStat {
	counts := make(map[int]int)
	for _, order := range orders {
		counts[order.CreatedAt.Hour()]++
	}
	var stats []models.HourStat
	for hour := 0; hour < 24; hour++ {
		if count, ok := counts[hour]; ok {
			stats = append(stats, models.HourStat{Hour: hour, Orders: count})
		}
	}
	return stats
}
