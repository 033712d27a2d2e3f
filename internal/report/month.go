package report

import (
	"fmt"
	"time"

	"duka/manager/internal/model"

	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// TOTDescription labels the Tax expense recorded for the monthly turnover tax.
func TOTDescription(rate decimal.Decimal) string {
	return fmt.Sprintf("Turnover Tax (%s%%)", rate.Mul(decimal.NewFromInt(100)).String())
}

// MonthBounds returns [from, to) of a "YYYY-MM" month in loc. An empty month means the month containing now.
func MonthBounds(month string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	var start time.Time
	if month == "" {
		y, m, _ := now.In(loc).Date()
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation(monthLayout, month, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", model.ErrInvalidInput)
		}
		start = parsed
	}
	return start, start.AddDate(0, 1, 0), nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// MonthlySales sums the revenue of sales made in [from, to).
func MonthlySales(sales []model.Sale, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if inRange(s.CreatedAt, from, to) {
			total = total.Add(s.TotalAmount)
		}
	}
	return total
}

// TurnoverTax is the TOT due on the given sales at rate.
func TurnoverTax(monthlySales, rate decimal.Decimal) (decimal.Decimal, error) {
	tax := monthlySales.Mul(rate).Round(2)
	if !tax.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: TOT is calculated as %s%% of your recorded sales",
			model.ErrNoSales, rate.Mul(decimal.NewFromInt(100)).String())
	}
	return tax, nil
}

func TotalExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func MonthSummary(sales []model.Sale, expenses []model.Expense, from, to time.Time, rate decimal.Decimal) model.MonthSummary {
	sum := model.MonthSummary{
		Month:    from.Format(monthLayout),
		Revenue:  decimal.Zero,
		Profit:   decimal.Zero,
		Expenses: decimal.Zero,
		From:     from,
		To:       to,
	}
	for _, s := range sales {
		if !inRange(s.CreatedAt, from, to) {
			continue
		}
		sum.Revenue = sum.Revenue.Add(s.TotalAmount)
		sum.Profit = sum.Profit.Add(s.Profit())
	}

	byCategory := make(map[model.ExpenseCategory]decimal.Decimal)
	for _, e := range expenses {
		// expense dates are calendar days, so match on the month label rather than instants
		if e.Date.Format(monthLayout) != sum.Month {
			continue
		}
		sum.Expenses = sum.Expenses.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	for _, c := range model.ExpenseCategories {
		if amount, ok := byCategory[c]; ok {
			sum.ByCategory = append(sum.ByCategory, model.CategoryAmount{Category: c, Amount: amount})
		}
	}

	sum.TOTDue = sum.Revenue.Mul(rate).Round(2)
	sum.NetProfit = sum.Profit.Sub(sum.Expenses)
	return sum
}
