package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"duka/manager/internal/model"
	"duka/manager/internal/money"
	"duka/manager/internal/report"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ExpenseService struct {
	store   Store
	log     *zap.Logger
	loc     *time.Location
	totRate decimal.Decimal
	now     func() time.Time
}

func NewExpenseService(store Store, log *zap.Logger, loc *time.Location, totRate decimal.Decimal) *ExpenseService {
	return &ExpenseService{store: store, log: log, loc: loc, totRate: totRate, now: time.Now}
}

type ExpenseInput struct {
	Category    model.ExpenseCategory `json:"category"`
	Description string                `json:"description"`
	Amount      decimal.Decimal       `json:"amount"`
	// Date is YYYY-MM-DD; empty means today.
	Date string `json:"date"`
}

func (s *ExpenseService) AddExpense(ctx context.Context, actor model.Member, in ExpenseInput) (model.Expense, error) {
	if in.Category == "" {
		in.Category = model.ExpenseOther
	}
	if !in.Category.Valid() {
		return model.Expense{}, fmt.Errorf("%w: unknown expense category %q", model.ErrInvalidInput, in.Category)
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return model.Expense{}, fmt.Errorf("%w: description is required", model.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return model.Expense{}, fmt.Errorf("%w: amount must be greater than 0", model.ErrInvalidInput)
	}
	if err := money.Check("amount", in.Amount); err != nil {
		return model.Expense{}, err
	}

	now := s.now()
	date := report.StartOfDay(now, s.loc)
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return model.Expense{}, fmt.Errorf("%w: date must be YYYY-MM-DD", model.ErrInvalidInput)
		}
		date = parsed
	}

	e := model.Expense{
		ID:          uuid.NewString(),
		ShopID:      actor.ShopID,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
	}
	if err := s.store.CreateExpense(ctx, e); err != nil {
		return model.Expense{}, err
	}
	s.log.Info("expense recorded",
		zap.String("shop_id", e.ShopID),
		zap.String("category", string(e.Category)),
		zap.String("amount", e.Amount.String()),
	)
	return e, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, actor model.Member) ([]model.Expense, error) {
	return s.store.ListExpenses(ctx, actor.ShopID)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, actor model.Member, id string) error {
	if err := s.store.DeleteExpense(ctx, actor.ShopID, id); err != nil {
		return err
	}
	s.log.Info("expense deleted", zap.String("shop_id", actor.ShopID), zap.String("expense_id", id))
	return nil
}

func (s *ExpenseService) Total(ctx context.Context, actor model.Member) (decimal.Decimal, error) {
	expenses, err := s.store.ListExpenses(ctx, actor.ShopID)
	if err != nil {
		return decimal.Zero, err
	}
	return report.TotalExpenses(expenses), nil
}

// QuickAddTOT records this month's turnover tax as a Tax expense.
func (s *ExpenseService) QuickAddTOT(ctx context.Context, actor model.Member) (model.Expense, error) {
	sales, err := s.store.ListSales(ctx, actor.ShopID)
	if err != nil {
		return model.Expense{}, err
	}
	from, to, err := report.MonthBounds("", s.now(), s.loc)
	if err != nil {
		return model.Expense{}, err
	}
	tax, err := report.TurnoverTax(report.MonthlySales(sales, from, to), s.totRate)
	if err != nil {
		return model.Expense{}, err
	}
	return s.AddExpense(ctx, actor, ExpenseInput{
		Category:    model.ExpenseTax,
		Description: report.TOTDescription(s.totRate),
		Amount:      tax,
	})
}
