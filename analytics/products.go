package analytics

import (
	"sort"
	"time"

	"github.com/WashLinkHQ/washlink-go/models"
)

// SoldItem is one order line attributed to a product, with enough of the
// parent order to filter by status and month.
type SoldItem struct {
	OrderID        string
	OrderStatus    models.OrderStatus
	OrderCreatedAt time.Time
	Quantity       int
	TotalPrice     float64
}

// ProductSales pairs a product with every line item ever sold for it.
type ProductSales struct {
	Product models.Product
	Items   []SoldItem
}

// ComputeProductsOverview builds the admin products report. Revenue and
// quantity figures only count items on completed or delivered orders.
func ComputeProductsOverview(products []ProductSales, now time.Time) *models.ProductsOverview {
	report := &models.ProductsOverview{}
	report.Metrics.TotalProducts = len(products)

	var totalRevenue, totalPrice float64
	totalQuantity := 0
	productsWithSales := 0

	type catAccum struct {
		products int
		revenue  float64
	}
	categories := make(map[string]*catAccum)

	rows := make([]models.ProductStat, 0, len(products))
	for _, sale := range products {
		row := models.ProductStat{
			ID:       sale.Product.ID,
			Name:     sale.Product.Name,
			Category: sale.Product.Category,
			Price:    sale.Product.Price,
		}
		orders := make(map[string]bool)
		for _, item := range sale.Items {
			if !item.OrderStatus.IsCompleted() {
				continue
			}
			row.Stats.QuantitySold += item.Quantity
			row.Stats.Revenue += item.TotalPrice
			orders[item.OrderID] = true
		}
		row.Stats.Orders = len(orders)
		if row.Stats.Orders > 0 {
			row.Stats.AverageOrderValue = row.Stats.Revenue / float64(row.Stats.Orders)
		}
		rows = append(rows, row)

		totalRevenue += row.Stats.Revenue
		totalQuantity += row.Stats.QuantitySold
		totalPrice += sale.Product.Price
		if len(sale.Items) > 0 {
			productsWithSales++
		}

		if sale.Product.Category != "" {
			accum := categories[sale.Product.Category]
			if accum == nil {
				accum = &catAccum{}
				categories[sale.Product.Category] = accum
			}
			accum.products++
			accum.revenue += row.Stats.Revenue
		}
	}

	report.Metrics.TotalRevenue = totalRevenue
	report.Metrics.TotalQuantitySold = totalQuantity
	if len(products) > 0 {
		report.Metrics.AverageProductPrice = totalPrice / float64(len(products))
	}

	for category, accum := range categories {
		stat := models.ProductCategoryStat{
			Category:     category,
			ProductCount: accum.products,
			Revenue:      accum.revenue,
		}
		if totalRevenue > 0 {
			stat.Percentage = accum.revenue / totalRevenue * 100
		}
		report.Categories.Breakdown = append(report.Categories.Breakdown, stat)
	}
	sort.Slice(report.Categories.Breakdown, func(i, j int) bool {
		return report.Categories.Breakdown[i].Category < report.Categories.Breakdown[j].Category
	})
	sort.SliceStable(report.Categories.Breakdown, func(i, j int) bool {
		return report.Categories.Breakdown[i].Revenue > report.Categories.Breakdown[j].Revenue
	})
	report.Categories.TotalCategories = len(categories)
	if len(report.Categories.Breakdown) > 0 {
		report.Categories.MostPopular = report.Categories.Breakdown[0].Category
	} else {
		report.Categories.MostPopular = "No categories"
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Stats.Revenue > rows[j].Stats.Revenue
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}
	report.TopProducts = rows

	// Completed revenue per calendar month, last six months.
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)
		var revenue float64
		for _, sale := range products {
			for _, item := range sale.Items {
				if !item.OrderStatus.IsCompleted() {
					continue
				}
				if item.OrderCreatedAt.Before(monthStart) || !item.OrderCreatedAt.Before(monthEnd) {
					continue
				}
				revenue += item.TotalPrice
			}
		}
		report.Trends.MonthlyRevenue = append(report.Trends.MonthlyRevenue, models.MonthRevenue{
			Month:   monthStart.Format("Jan 06"),
			Revenue: revenue,
		})
	}
	if months := report.Trends.MonthlyRevenue; len(months) >= 2 {
		report.Trends.RevenueGrowth = months[len(months)-1].Revenue - months[len(months)-2].Revenue
	}

	if len(products) > 0 {
		report.Insights.AverageRevenuePerProduct = totalRevenue / float64(len(products))
		report.Insights.AverageQuantityPerProduct = float64(totalQuantity) / float64(len(products))
		report.Insights.ConversionRate = float64(productsWithSales) / float64(len(products)) * 100
	}

	return report
}
