// Package report aggregates products, sales and expenses already loaded from storage.
package report

import (
	"strings"
	"time"

	"duka/manager/internal/model"

	"github.com/shopspring/decimal"
)

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func Stats(products []model.Product, sales []model.Sale, now time.Time, loc *time.Location) model.DashboardStats {
	stats := model.DashboardStats{
		TotalProducts:   len(products),
		TotalStockValue: decimal.Zero,
		TodaySales:      decimal.Zero,
		TodayProfit:     decimal.Zero,
	}
	for _, p := range products {
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		stats.TotalStockValue = stats.TotalStockValue.Add(p.StockValue())
	}

	today := StartOfDay(now, loc)
	for _, s := range sales {
		if s.CreatedAt.Before(today) {
			continue
		}
		stats.TodaySales = stats.TodaySales.Add(s.TotalAmount)
		stats.TodayProfit = stats.TodayProfit.Add(s.Profit())
	}
	return stats
}

func LowStock(products []model.Product) []model.Product {
	var low []model.Product
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}

// Search matches product names case-insensitively. An empty query matches everything.
func Search(products []model.Product, q string) []model.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return products
	}
	var found []model.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			found = append(found, p)
		}
	}
	return found
}
