package analytics

import (
	"testing"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

func TestTimeframeSpec(t *testing.T) {
	tests := []struct {
		timeframe  string
		wantName   string
		wantN      int
		wantLength int
	}{
		{"week", "week", 7, 1},
		{"month", "month", 4, 7},
		{"year", "year", 12, 30},
		{"bogus", "month", 4, 7},
		{"", "month", 4, 7},
	}
	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			name, n, length := TimeframeSpec(tt.timeframe, TimeframeMonth)
			if name != tt.wantName || n != tt.wantN || length != tt.wantLength {
				t.Errorf("TimeframeSpec(%q) = (%s, %d, %d), want (%s, %d, %d)",
					tt.timeframe, name, n, length, tt.wantName, tt.wantN, tt.wantLength)
			}
		})
	}
}

func TestMakeBucketsPartition(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	buckets := MakeBuckets(now, 4, 7)

	if len(buckets) != 4 {
		t.Fatalf("got %d buckets, want 4", len(buckets))
	}
	if !buckets[3].End.Equal(now) {
		t.Errorf("last bucket end = %v, want %v", buckets[3].End, now)
	}
	if !buckets[0].Start.Equal(now.AddDate(0, 0, -28)) {
		t.Errorf("first bucket start = %v, want %v", buckets[0].Start, now.AddDate(0, 0, -28))
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i].Start.Equal(buckets[i-1].End) {
			t.Errorf("gap between bucket %d and %d", i-1, i)
		}
	}
	if !buckets[3].Last {
		t.Error("final bucket not flagged Last")
	}
}

func TestBucketIndex(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	const n, length = 4, 7

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"now lands in last bucket", now, n - 1},
		{"future is out of range", now.Add(time.Second), -1},
		{"inside last bucket", now.AddDate(0, 0, -3), n - 1},
		{"boundary belongs to later bucket", now.AddDate(0, 0, -7), n - 1},
		{"just before boundary", now.AddDate(0, 0, -7).Add(-time.Second), n - 2},
		{"window start opens first bucket", now.AddDate(0, 0, -28), 0},
		{"before window", now.AddDate(0, 0, -28).Add(-time.Second), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketIndex(now, n, length, tt.t); got != tt.want {
				t.Errorf("BucketIndex(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}

// Every order inside the window must land in exactly one bucket; the index
// math and the bucket intervals have to agree.
func TestBucketIndexMatchesIntervals(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	const n, length = 12, 30
	buckets := MakeBuckets(now, n, length)

	for offset := 0; offset < n*length*24; offset += 13 {
		ts := now.Add(-time.Duration(offset) * time.Hour)
		idx := BucketIndex(now, n, length, ts)
		if idx < 0 || idx >= n {
			t.Fatalf("timestamp %v dropped (idx %d)", ts, idx)
		}
		b := buckets[idx]
		inInterval := !ts.Before(b.Start) && (ts.Before(b.End) || (b.Last && ts.Equal(b.End)))
		if !inInterval {
			t.Errorf("timestamp %v assigned to bucket %d [%v, %v)", ts, idx, b.Start, b.End)
		}
	}
}

func TestTrendSeries(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 100, now.AddDate(0, 0, -1)),
		order("o2", "a", models.StatusCompleted, 60, now.AddDate(0, 0, -2)),
		order("o3", "b", models.StatusPending, 40, now.AddDate(0, 0, -10)),
		order("o4", "c", models.StatusPending, 10, now.AddDate(0, 0, -40)), // outside
	}

	series := TrendSeries(orders, now, TimeframeMonth, 4, 7)
	if len(series) != 4 {
		t.Fatalf("got %d buckets, want 4", len(series))
	}

	last := series[3]
	if last.Orders != 2 || last.Revenue != 160 {
		t.Errorf("last bucket = %d orders / %v revenue, want 2 / 160", last.Orders, last.Revenue)
	}
	if last.Customers != 1 {
		t.Errorf("last bucket customers = %d, want 1 (distinct)", last.Customers)
	}
	if last.AverageOrderValue != 80 {
		t.Errorf("last bucket AOV = %v, want 80", last.AverageOrderValue)
	}

	if series[2].Orders != 1 || series[2].Revenue != 40 {
		t.Errorf("third bucket = %d orders / %v revenue, want 1 / 40", series[2].Orders, series[2].Revenue)
	}

	totalOrders := 0
	for _, b := range series {
		totalOrders += b.Orders
	}
	if totalOrders != 3 {
		t.Errorf("bucketed %d orders, want 3 (one outside window)", totalOrders)
	}

	if series[0].Period != "Week 1" || series[3].Period != "Week 4" {
		t.Errorf("month labels = %q..%q, want Week 1..Week 4", series[0].Period, series[3].Period)
	}
}

func TestDailySeriesZeroFill(t *testing.T) {
	window := Window{
		Start: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}
	orders := []models.Order{
		order("o1", "a", models.StatusCompleted, 50, time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)),
		order("o2", "b", models.StatusPending, 30, time.Date(2026, 8, 21, 17, 0, 0, 0, time.UTC)),
	}

	series := DailySeries(orders, window)
	if len(series) != 5 {
		t.Fatalf("got %d days, want 5", len(series))
	}

	byDate := make(map[string]models.DayStat)
	for _, d := range series {
		byDate[d.Date] = d
	}

	busy := byDate["2026-08-21"]
	if busy.Orders != 2 || busy.Revenue != 80 || busy.Customers != 2 {
		t.Errorf("busy day = %+v, want 2 orders / 80 revenue / 2 customers", busy)
	}
	if quiet := byDate["2026-08-22"]; quiet.Orders != 0 || quiet.Revenue != 0 {
		t.Errorf("quiet day should be zero-filled, got %+v", quiet)
	}
}

func TestHourlyDistribution(t *testing.T) {
	base := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order("o1", "a", models.StatusPending, 1, base.Add(9*time.Hour)),
		order("o2", "b", models.StatusPending, 1, base.Add(9*time.Hour+30*time.Minute)),
		order("o3", "c", models.StatusPending, 1, base.Add(18*time.Hour)),
	}

	stats := HourlyDistribution(orders)
	if len(stats) != 2 {
		t.Fatalf("got %d hours, want 2", len(stats))
	}
	if stats[0].Hour != 9 || stats[0].Orders != 2 {
		t.Errorf("stats[0] = %+v, want hour 9 with 2 orders", stats[0])
	}
	if stats[1].Hour != 18 || stats[1].Orders != 1 {
		t.Errorf("stats[1] = %+v, want hour 18 with 1 order", stats[1])
	}
}
