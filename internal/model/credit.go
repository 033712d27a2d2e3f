package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditStatus string

const (
	CreditPending CreditStatus = "pending"
	CreditPartial CreditStatus = "partial"
	CreditPaid    CreditStatus = "paid"
)

type Customer struct {
	ID        string    `db:"id" json:"id"`
	ShopID    string    `db:"shop_id" json:"shop_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreditSale is one entry in a customer's deni.
type CreditSale struct {
	ID          string          `db:"id" json:"id"`
	ShopID      string          `db:"shop_id" json:"shop_id"`
	CustomerID  string          `db:"customer_id" json:"customer_id"`
	SaleID      string          `db:"sale_id" json:"sale_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	AmountPaid  decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	Status      CreditStatus    `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type CreditPayment struct {
	ID           string          `db:"id" json:"id"`
	CreditSaleID string          `db:"credit_sale_id" json:"credit_sale_id"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// CustomerBalance is a customer with the amount still owed across open credits.
type CustomerBalance struct {
	Customer
	Owed decimal.Decimal `json:"owed"`
}
