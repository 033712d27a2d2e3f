package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID          string          `db:"id" json:"id"`
	ShopID      string          `db:"shop_id" json:"shop_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	CostPrice   decimal.Decimal `db:"cost_price" json:"cost_price"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// Profit is the margin earned using the cost price captured at the time of sale.
func (s Sale) Profit() decimal.Decimal {
	return s.TotalAmount.Sub(s.CostPrice.Mul(decimal.NewFromInt(int64(s.Quantity))))
}
