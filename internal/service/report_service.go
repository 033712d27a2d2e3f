package service

import (
	"context"
	"time"

	"duka/manager/internal/model"
	"duka/manager/internal/report"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	store   Store
	loc     *time.Location
	totRate decimal.Decimal
	now     func() time.Time
}

func NewReportService(store Store, loc *time.Location, totRate decimal.Decimal) *ReportService {
	return &ReportService{store: store, loc: loc, totRate: totRate, now: time.Now}
}

func (s *ReportService) Dashboard(ctx context.Context, actor model.Member) (model.DashboardStats, error) {
	g, ctx := errgroup.WithContext(ctx)
	var products []model.Product
	var sales []model.Sale

	g.Go(func() error {
		var err error
		products, err = s.store.ListProducts(ctx, actor.ShopID)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.store.ListSales(ctx, actor.ShopID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.DashboardStats{}, err
	}

	return report.Stats(products, sales, s.now(), s.loc), nil
}

func (s *ReportService) SalesReport(ctx context.Context, actor model.Member, rng string) (model.SalesReport, error) {
	if rng == "" {
		rng = report.Range7Days
	}
	if _, err := report.Cutoff(rng, s.now()); err != nil {
		return model.SalesReport{}, err
	}
	sales, err := s.store.ListSales(ctx, actor.ShopID)
	if err != nil {
		return model.SalesReport{}, err
	}
	return report.SalesReport(sales, rng, s.now(), s.loc)
}

func (s *ReportService) SalesHistory(ctx context.Context, actor model.Member) (model.SalesHistory, error) {
	sales, err := s.store.ListSales(ctx, actor.ShopID)
	if err != nil {
		return model.SalesHistory{}, err
	}
	return report.SalesHistory(sales, s.loc), nil
}

// MonthSummary reports revenue, profit, expenses and TOT for a YYYY-MM month (current month when empty).
func (s *ReportService) MonthSummary(ctx context.Context, actor model.Member, month string) (model.MonthSummary, error) {
	from, to, err := report.MonthBounds(month, s.now(), s.loc)
	if err != nil {
		return model.MonthSummary{}, err
	}

	g, ctx := errgroup.WithContext(ctx)
	var sales []model.Sale
	var expenses []model.Expense

	g.Go(func() error {
		var err error
		sales, err = s.store.ListSales(ctx, actor.ShopID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(ctx, actor.ShopID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.MonthSummary{}, err
	}

	return report.MonthSummary(sales, expenses, from, to, s.totRate), nil
}
