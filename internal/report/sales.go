package report

import (
	"fmt"
	"sort"
	"time"

	"duka/manager/internal/model"

	"github.com/shopspring/decimal"
)

const (
	Range7Days  = "7d"
	Range30Days = "30d"
	RangeAll    = "all"

	dailyBuckets = 7
	topProducts  = 5
	dayLayout    = "2006-01-02"
)

// Cutoff returns the earliest sale time included in rng. A zero time means no cutoff.
func Cutoff(rng string, now time.Time) (time.Time, error) {
	switch rng {
	case Range7Days:
		return now.AddDate(0, 0, -7), nil
	case Range30Days:
		return now.AddDate(0, 0, -30), nil
	case RangeAll:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown range %q", model.ErrInvalidInput, rng)
	}
}

func SalesReport(sales []model.Sale, rng string, now time.Time, loc *time.Location) (model.SalesReport, error) {
	cutoff, err := Cutoff(rng, now)
	if err != nil {
		return model.SalesReport{}, err
	}

	rep := model.SalesReport{
		Range:  rng,
		Totals: model.SalesTotals{Revenue: decimal.Zero, Profit: decimal.Zero},
	}
	daily := make(map[string]*model.DailySales)
	products := make(map[string]*model.TopProduct)

	for _, s := range sales {
		if s.CreatedAt.Before(cutoff) {
			continue
		}
		profit := s.Profit()
		rep.Totals.Revenue = rep.Totals.Revenue.Add(s.TotalAmount)
		rep.Totals.Profit = rep.Totals.Profit.Add(profit)
		rep.Totals.Items += s.Quantity

		day := s.CreatedAt.In(loc).Format(dayLayout)
		d, ok := daily[day]
		if !ok {
			d = &model.DailySales{Date: day, Sales: decimal.Zero, Profit: decimal.Zero}
			daily[day] = d
		}
		d.Sales = d.Sales.Add(s.TotalAmount)
		d.Profit = d.Profit.Add(profit)

		p, ok := products[s.ProductID]
		if !ok {
			p = &model.TopProduct{ProductID: s.ProductID, Name: s.ProductName, Revenue: decimal.Zero}
			products[s.ProductID] = p
		}
		p.Quantity += s.Quantity
		p.Revenue = p.Revenue.Add(s.TotalAmount)
	}

	rep.Daily = make([]model.DailySales, 0, len(daily))
	for _, d := range daily {
		rep.Daily = append(rep.Daily, *d)
	}
	sort.Slice(rep.Daily, func(i, j int) bool { return rep.Daily[i].Date < rep.Daily[j].Date })
	if len(rep.Daily) > dailyBuckets {
		rep.Daily = rep.Daily[len(rep.Daily)-dailyBuckets:]
	}

	rep.TopProducts = make([]model.TopProduct, 0, len(products))
	for _, p := range products {
		rep.TopProducts = append(rep.TopProducts, *p)
	}
	sort.Slice(rep.TopProducts, func(i, j int) bool {
		a, b := rep.TopProducts[i], rep.TopProducts[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Name < b.Name
	})
	if len(rep.TopProducts) > topProducts {
		rep.TopProducts = rep.TopProducts[:topProducts]
	}
	return rep, nil
}

// SalesHistory groups sales by local day, newest day first.
func SalesHistory(sales []model.Sale, loc *time.Location) model.SalesHistory {
	h := model.SalesHistory{TotalSales: decimal.Zero, TotalProfit: decimal.Zero}
	index := make(map[string]int)
	sorted := append([]model.Sale(nil), sales...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	for _, s := range sorted {
		day := s.CreatedAt.In(loc).Format(dayLayout)
		i, ok := index[day]
		if !ok {
			i = len(h.Days)
			index[day] = i
			h.Days = append(h.Days, model.SalesDay{Date: day, Total: decimal.Zero, Profit: decimal.Zero})
		}
		h.Days[i].Sales = append(h.Days[i].Sales, s)
		h.Days[i].Total = h.Days[i].Total.Add(s.TotalAmount)
		h.Days[i].Profit = h.Days[i].Profit.Add(s.Profit())

		h.TotalSales = h.TotalSales.Add(s.TotalAmount)
		h.TotalProfit = h.TotalProfit.Add(s.Profit())
	}
	return h
}
