// Package ledger holds the deni bookkeeping rules for credit sales.
package ledger

import (
	"fmt"
	"time"

	"duka/manager/internal/model"
	"duka/manager/internal/money"

	"github.com/shopspring/decimal"
)

// Balance is what the customer still owes on a credit. It is never negative.
func Balance(c model.CreditSale) decimal.Decimal {
	b := c.Amount.Sub(c.AmountPaid)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// StatusFor derives the credit status from the original amount and what has been paid so far.
func StatusFor(amount, paid decimal.Decimal) model.CreditStatus {
	switch {
	case !paid.IsPositive():
		return model.CreditPending
	case paid.LessThan(amount):
		return model.CreditPartial
	default:
		return model.CreditPaid
	}
}

// NewCredit opens a pending credit for a sale made on deni.
func NewCredit(shopID, customerID string, sale model.Sale, id string) model.CreditSale {
	return model.CreditSale{
		ID:          id,
		ShopID:      shopID,
		CustomerID:  customerID,
		SaleID:      sale.ID,
		ProductName: sale.ProductName,
		Quantity:    sale.Quantity,
		Amount:      sale.TotalAmount,
		AmountPaid:  decimal.Zero,
		Status:      StatusFor(sale.TotalAmount, decimal.Zero),
		CreatedAt:   sale.CreatedAt,
		UpdatedAt:   sale.CreatedAt,
	}
}

// ApplyPayment returns c with amount added to what has been paid.
// Payments must be positive and may not exceed the outstanding balance.
func ApplyPayment(c model.CreditSale, amount decimal.Decimal, now time.Time) (model.CreditSale, error) {
	if c.Status == model.CreditPaid {
		return c, fmt.Errorf("%w: credit is already paid", model.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return c, fmt.Errorf("%w: payment amount must be greater than 0", model.ErrInvalidInput)
	}
	if err := money.Check("payment amount", amount); err != nil {
		return c, err
	}
	balance := Balance(c)
	if amount.GreaterThan(balance) {
		return c, fmt.Errorf("%w: balance is %s", model.ErrOverpayment, balance.StringFixed(2))
	}

	c.AmountPaid = c.AmountPaid.Add(amount)
	c.Status = StatusFor(c.Amount, c.AmountPaid)
	c.UpdatedAt = now
	return c, nil
}

// TotalOwed sums the balances of every credit that is not fully paid.
func TotalOwed(credits []model.CreditSale) decimal.Decimal {
	total := decimal.Zero
	for _, c := range credits {
		if c.Status == model.CreditPaid {
			continue
		}
		total = total.Add(Balance(c))
	}
	return total
}

func CustomerOwed(credits []model.CreditSale, customerID string) decimal.Decimal {
	return TotalOwed(Outstanding(credits, customerID))
}

// Outstanding lists a customer's credits that still carry a balance.
func Outstanding(credits []model.CreditSale, customerID string) []model.CreditSale {
	var open []model.CreditSale
	for _, c := range credits {
		if c.CustomerID == customerID && c.Status != model.CreditPaid {
			open = append(open, c)
		}
	}
	return open
}

// Summarize reports the shop-wide deni position.
func Summarize(credits []model.CreditSale) model.CreditSummary {
	owing := make(map[string]struct{})
	summary := model.CreditSummary{TotalOwed: decimal.Zero}
	for _, c := range credits {
		if c.Status == model.CreditPaid {
			continue
		}
		summary.OpenCredits++
		summary.TotalOwed = summary.TotalOwed.Add(Balance(c))
		owing[c.CustomerID] = struct{}{}
	}
	summary.CustomersOwing = len(owing)
	return summary
}
