// Package models defines derived analytics structures. Everything here is
// recomputed from order rows on each request and never persisted.
package models

import "time"

// Metrics are the scalar aggregates over one order set.
type Metrics struct {
	TotalOrders           int     `json:"totalOrders"`
	TotalRevenue          float64 `json:"totalRevenue"`
	CompletedOrders       int     `json:"completedOrders"`
	CompletedRevenue      float64 `json:"completedRevenue"`
	AverageOrderValue     float64 `json:"averageOrderValue"`
	UniqueCustomers       int     `json:"uniqueCustomers"`
	NewCustomers          int     `json:"newCustomers"`
	RepeatCustomers       int     `json:"repeatCustomers"`
	CustomerRetentionRate float64 `json:"customerRetentionRate"`
}

// CategoryStat is one row of the category performance breakdown.
type CategoryStat struct {
	Category   string  `json:"category"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Quantity   int     `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

// DayStat is one day of the daily performance series.
type DayStat struct {
	Date              string  `json:"date"`
	Orders            int     `json:"orders"`
	Revenue           float64 `json:"revenue"`
	Customers         int     `json:"customers"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// HourStat counts orders placed in one hour of day.
type HourStat struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

// TopCustomer is one row of the per-period customer ranking.
type TopCustomer struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Orders            int     `json:"orders"`
	TotalSpent        float64 `json:"totalSpent"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// Growth compares one period with the previous period of equal length.
type Growth struct {
	RevenueGrowth         float64 `json:"revenueGrowth"`
	OrderGrowth           float64 `json:"orderGrowth"`
	PreviousPeriodRevenue float64 `json:"previousPeriodRevenue"`
	PreviousPeriodOrders  int     `json:"previousPeriodOrders"`
}

// PeriodInfo echoes the analyzed window back to the caller.
type PeriodInfo struct {
	Timeframe string    `json:"timeframe,omitempty"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Days      int       `json:"days,omitempty"`
}

// AnalyticsOverview is the full admin analytics report for a window.
type AnalyticsOverview struct {
	Period       PeriodInfo        `json:"period"`
	Metrics      Metrics           `json:"metrics"`
	Growth       Growth            `json:"growth"`
	StatusCounts map[string]int    `json:"orderStatus"`
	Categories   []CategoryStat    `json:"serviceCategories"`
	DailySeries  []DayStat         `json:"dailyPerformance"`
	HourlySeries []HourStat        `json:"hourlyDistribution"`
	TopCustomers []TopCustomer     `json:"topCustomers"`
	PeakHours    []HourStat        `json:"peakHours"`
	TopCategory  string            `json:"topCategory"`
	Insights     AnalyticsInsights `json:"insights"`
}

// AnalyticsInsights are the secondary figures on the overview report.
type AnalyticsInsights struct {
	BusiestDay         DayStat `json:"busiestDay"`
	HighestRevenueDay  DayStat `json:"highestRevenueDay"`
	ConversionRate     float64 `json:"conversionRate"`
	AverageDailyOrders float64 `json:"averageDailyOrders"`
}

// Segment is a categorical customer classification.
type Segment string

const (
	SegmentNew     Segment = "New"
	SegmentRegular Segment = "Regular"
	SegmentPremium Segment = "Premium"
	SegmentVIP     Segment = "VIP"
)

// SegmentStat aggregates one customer segment.
type SegmentStat struct {
	Segment         Segment `json:"segment"`
	Count           int     `json:"count"`
	Revenue         float64 `json:"revenue"`
	AverageSpending float64 `json:"averageSpending"`
	Percentage      float64 `json:"percentage"`
}

// BucketStat is one period bucket of a trend series.
type BucketStat struct {
	Period            string    `json:"period"`
	Start             time.Time `json:"-"`
	End               time.Time `json:"-"`
	Orders            int       `json:"orders"`
	Revenue           float64   `json:"revenue"`
	Customers         int       `json:"customers,omitempty"`
	NewCustomers      int       `json:"newCustomers,omitempty"`
	ActiveCustomers   int       `json:"activeCustomers,omitempty"`
	TotalCustomers    int       `json:"totalCustomers,omitempty"`
	AverageOrderValue float64   `json:"aov,omitempty"`
}

// CustomerOverview is the admin customer analytics report.
type CustomerOverview struct {
	Metrics struct {
		TotalCustomers         int     `json:"totalCustomers"`
		ActiveCustomers        int     `json:"activeCustomers"`
		NewCustomersThisPeriod int     `json:"newCustomersThisPeriod"`
		AverageLTV             float64 `json:"averageLTV"`
		RetentionRate          float64 `json:"retentionRate"`
	} `json:"metrics"`
	Growth struct {
		PeriodGrowth int          `json:"periodGrowth"`
		GrowthRate   float64      `json:"growthRate"`
		ChartData    []BucketStat `json:"chartData"`
	} `json:"growth"`
	Segments []SegmentStat `json:"segments"`
	Insights struct {
		AverageOrdersPerCustomer float64     `json:"averageOrdersPerCustomer"`
		TopSpendingSegment       SegmentStat `json:"topSpendingSegment"`
		AcquisitionTrend         []int       `json:"customerAcquisitionTrend"`
	} `json:"insights"`
	Period PeriodInfo `json:"period"`
}

// CategoryAOV is the per-category slice of the AOV report.
type CategoryAOV struct {
	Category string  `json:"category"`
	AOV      float64 `json:"aov"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// SegmentAOV is the windowed spend-frequency slice of the AOV report.
type SegmentAOV struct {
	Segment string  `json:"segment"`
	AOV     float64 `json:"aov"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// AOVAnalysis is the admin average-order-value dashboard payload.
type AOVAnalysis struct {
	Current struct {
		AOV          float64 `json:"aov"`
		TotalOrders  int     `json:"totalOrders"`
		TotalRevenue float64 `json:"totalRevenue"`
		Growth       float64 `json:"growth"`
	} `json:"current"`
	Comparison struct {
		PreviousAOV       float64 `json:"previousAOV"`
		GrowthPercentage  float64 `json:"growthPercentage"`
		ImprovementAmount float64 `json:"improvementAmount"`
	} `json:"comparison"`
	Trends     []BucketStat  `json:"trends"`
	ByCategory []CategoryAOV `json:"byCategory"`
	BySegment  []SegmentAOV  `json:"bySegment"`
	Period     PeriodInfo    `json:"period"`
}

// ProductStat is one row of the products overview ranking.
type ProductStat struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stats    struct {
		QuantitySold      int     `json:"quantitySold"`
		Revenue           float64 `json:"revenue"`
		Orders            int     `json:"orders"`
		AverageOrderValue float64 `json:"averageOrderValue"`
	} `json:"stats"`
}

// ProductCategoryStat is one category row of the products overview.
type ProductCategoryStat struct {
	Category     string  `json:"category"`
	ProductCount int     `json:"productCount"`
	Revenue      float64 `json:"revenue"`
	Percentage   float64 `json:"percentage"`
}

// MonthRevenue is one month of the products revenue trend.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ProductsOverview is the admin products analytics report.
type ProductsOverview struct {
	Metrics struct {
		TotalProducts       int     `json:"totalProducts"`
		TotalRevenue        float64 `json:"totalRevenue"`
		TotalQuantitySold   int     `json:"totalQuantitySold"`
		AverageProductPrice float64 `json:"averageProductPrice"`
	} `json:"metrics"`
	Categories struct {
		Breakdown       []ProductCategoryStat `json:"breakdown"`
		MostPopular     string                `json:"mostPopular"`
		TotalCategories int                   `json:"totalCategories"`
	} `json:"categories"`
	TopProducts []ProductStat `json:"topProducts"`
	Trends      struct {
		MonthlyRevenue []MonthRevenue `json:"monthlyRevenue"`
		RevenueGrowth  float64        `json:"revenueGrowth"`
	} `json:"trends"`
	Insights struct {
		AverageRevenuePerProduct  float64 `json:"averageRevenuePerProduct"`
		AverageQuantityPerProduct float64 `json:"averageQuantityPerProduct"`
		ConversionRate            float64 `json:"conversionRate"`
	} `json:"insights"`
}

// PlatformOverview is the super-admin dashboard payload.
type PlatformOverview struct {
	Overview struct {
		TotalLaundries  int     `json:"totalLaundries"`
		TotalUsers      int     `json:"totalUsers"`
		TotalOrders     int     `json:"totalOrders"`
		PlatformRevenue float64 `json:"platformRevenue"`
	} `json:"overview"`
	MonthlyStats struct {
		MonthlyOrders   int     `json:"monthlyOrders"`
		MonthlyRevenue  float64 `json:"monthlyRevenue"`
		CompletedOrders int     `json:"completedOrders"`
	} `json:"monthlyStats"`
	Status struct {
		ActiveLaundries    int `json:"activeLaundries"`
		SuspendedLaundries int `json:"suspendedLaundries"`
		PendingOrders      int `json:"pendingOrders"`
	} `json:"status"`
	Growth struct {
		OrdersGrowth  float64 `json:"ordersGrowth"`
		RevenueGrowth float64 `json:"revenueGrowth"`
		UserGrowth    float64 `json:"userGrowth"`
	} `json:"growth"`
}

// LaundryPerformance is one row of the super-admin performance ranking.
type LaundryPerformance struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	Logo        string        `json:"logo,omitempty"`
	Status      LaundryStatus `json:"status"`
	Location    string        `json:"location"`
	Performance struct {
		OrdersMonth  int     `json:"ordersMonth"`
		Customers    int     `json:"customers"`
		Revenue      float64 `json:"revenue"`
		Rating       float64 `json:"rating"`
		TotalReviews int     `json:"totalReviews"`
		TotalOrders  int     `json:"totalOrders"`
		TotalRevenue float64 `json:"totalRevenue"`
	} `json:"performance"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CustomerProfileRow is one row of the admin customer directory, built from
// a customer's lifetime orders with the tenant.
type CustomerProfileRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	MemberSince time.Time `json:"memberSince"`
	Segment     Segment   `json:"segment"`
	Stats       struct {
		TotalOrders       int     `json:"totalOrders"`
		CompletedOrders   int     `json:"completedOrders"`
		TotalSpent        float64 `json:"totalSpent"`
		AverageOrderValue float64 `json:"averageOrderValue"`
	} `json:"stats"`
	LastOrder *LastOrderInfo `json:"lastOrder"`
	Status    string         `json:"status"`
}

// LastOrderInfo summarizes a customer's most recent order.
type LastOrderInfo struct {
	ID        string      `json:"id"`
	Amount    float64     `json:"amount"`
	Date      time.Time   `json:"date"`
	Status    OrderStatus `json:"status"`
	DaysSince int         `json:"daysSince"`
}

// Pagination is the standard page descriptor on list responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Showing     int  `json:"showing"`
}
