package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseRent      ExpenseCategory = "Rent"
	ExpenseSalary    ExpenseCategory = "Salary"
	ExpenseUtilities ExpenseCategory = "Utilities"
	ExpenseTransport ExpenseCategory = "Transport"
	ExpenseTax       ExpenseCategory = "Tax"
	ExpenseOther     ExpenseCategory = "Other"
)

var ExpenseCategories = []ExpenseCategory{
	ExpenseRent, ExpenseSalary, ExpenseUtilities, ExpenseTransport, ExpenseTax, ExpenseOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          string          `db:"id" json:"id"`
	ShopID      string          `db:"shop_id" json:"shop_id"`
	Category    ExpenseCategory `db:"category" json:"category"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Date        time.Time       `db:"date" json:"date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
