package service

import (
	"context"
	"fmt"

	"duka/manager/internal/model"
)

// Atomic runs fn in one transaction. Store calls made with the ctx given to fn join it.
type Atomic interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
}

type ShopStore interface {
	CreateShop(ctx context.Context, shop model.Shop) error
	GetShop(ctx context.Context, id string) (model.Shop, error)
	CreateProfile(ctx context.Context, p model.Profile) error
	CreateMember(ctx context.Context, m model.Member) error
	GetMemberByUser(ctx context.Context, userID string) (model.Member, error)
	GetMember(ctx context.Context, shopID, id string) (model.Member, error)
	ListEmployees(ctx context.Context, shopID string) ([]model.Employee, error)
	DeleteMember(ctx context.Context, shopID, id string) error
}

type ProductStore interface {
	CreateProduct(ctx context.Context, p model.Product) error
	GetProduct(ctx context.Context, shopID, id string) (model.Product, error)
	GetProductForUpdate(ctx context.Context, shopID, id string) (model.Product, error)
	ListProducts(ctx context.Context, shopID string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	DecrementStock(ctx context.Context, shopID, id string, quantity int) error
	DeleteProduct(ctx context.Context, shopID, id string) error
}

type SaleStore interface {
	CreateSale(ctx context.Context, s model.Sale) error
	ListSales(ctx context.Context, shopID string) ([]model.Sale, error)
}

type CreditStore interface {
	CreateCustomer(ctx context.Context, c model.Customer) error
	GetCustomer(ctx context.Context, shopID, id string) (model.Customer, error)
	ListCustomers(ctx context.Context, shopID string) ([]model.Customer, error)
	CreateCreditSale(ctx context.Context, c model.CreditSale) error
	GetCreditSale(ctx context.Context, shopID, id string) (model.CreditSale, error)
	GetCreditSaleForUpdate(ctx context.Context, shopID, id string) (model.CreditSale, error)
	ListCreditSales(ctx context.Context, shopID string) ([]model.CreditSale, error)
	UpdateCreditPayment(ctx context.Context, c model.CreditSale) error
	CreateCreditPayment(ctx context.Context, p model.CreditPayment) error
	ListCreditPayments(ctx context.Context, shopID, creditID string) ([]model.CreditPayment, error)
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e model.Expense) error
	ListExpenses(ctx context.Context, shopID string) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, shopID, id string) error
}

// Store is implemented by both the Postgres and the SQLite repositories.
type Store interface {
	Atomic
	ShopStore
	ProductStore
	SaleStore
	CreditStore
	ExpenseStore
}

func requireOwner(actor model.Member) error {
	if !actor.IsOwner() {
		return fmt.Errorf("%w: only the shop owner can do this", model.ErrForbidden)
	}
	return nil
}
