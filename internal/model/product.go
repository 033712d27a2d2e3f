package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCategory = "General"
	DefaultUnit     = "pcs"
)

type Product struct {
	ID                string          `db:"id" json:"id"`
	ShopID            string          `db:"shop_id" json:"shop_id"`
	Name              string          `db:"name" json:"name"`
	Category          string          `db:"category" json:"category"`
	Unit              string          `db:"unit" json:"unit"`
	CostPrice         decimal.Decimal `db:"cost_price" json:"cost_price"`
	SellingPrice      decimal.Decimal `db:"selling_price" json:"selling_price"`
	Quantity          int             `db:"quantity" json:"quantity"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"low_stock_threshold"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// IsLowStock reports whether the product is at or below its alert threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

func (p Product) StockValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func (p Product) UnitProfit() decimal.Decimal {
	return p.SellingPrice.Sub(p.CostPrice)
}
