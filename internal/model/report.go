package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts   int             `json:"total_products"`
	LowStockCount   int             `json:"low_stock_count"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TodaySales      decimal.Decimal `json:"today_sales"`
	TodayProfit     decimal.Decimal `json:"today_profit"`
}

type SalesTotals struct {
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
	Items   int             `json:"items"`
}

type DailySales struct {
	Date   string          `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesReport struct {
	Range       string       `json:"range"`
	Totals      SalesTotals  `json:"totals"`
	Daily       []DailySales `json:"daily"`
	TopProducts []TopProduct `json:"top_products"`
}

type SalesDay struct {
	Date   string          `json:"date"`
	Sales  []Sale          `json:"sales"`
	Total  decimal.Decimal `json:"total"`
	Profit decimal.Decimal `json:"profit"`
}

type SalesHistory struct {
	Days        []SalesDay      `json:"days"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

type CategoryAmount struct {
	Category ExpenseCategory `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type MonthSummary struct {
	Month      string           `json:"month"`
	Revenue    decimal.Decimal  `json:"revenue"`
	Profit     decimal.Decimal  `json:"profit"`
	Expenses   decimal.Decimal  `json:"expenses"`
	ByCategory []CategoryAmount `json:"by_category"`
	TOTDue     decimal.Decimal  `json:"tot_due"`
	NetProfit  decimal.Decimal  `json:"net_profit"`
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
}

type CreditSummary struct {
	TotalOwed      decimal.Decimal `json:"total_owed"`
	OpenCredits    int             `json:"open_credits"`
	CustomersOwing int             `json:"customers_owing"`
}
