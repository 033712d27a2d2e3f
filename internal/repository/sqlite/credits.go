package sqlite

import (
	"context"

	"duka/manager/internal/model"
)

const (
	customerColumns = "id, shop_id, name, phone, email, created_at"
	creditColumns   = `id, shop_id, customer_id, sale_id, product_name, quantity, amount, amount_paid, status,
	created_at, updated_at`
)

func (s *Store) CreateCustomer(ctx context.Context, c model.Customer) error {
	return s.mutate(ctx, "create customer", false,
		"INSERT INTO customers ("+customerColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.ShopID, c.Name, c.Phone, c.Email, utc(c.CreatedAt))
}

func (s *Store) GetCustomer(ctx context.Context, shopID, id string) (model.Customer, error) {
	var c model.Customer
	err := s.get(ctx, &c, "get customer",
		"SELECT "+customerColumns+" FROM customers WHERE shop_id = ? AND id = ?", shopID, id)
	return c, err
}

func (s *Store) ListCustomers(ctx context.Context, shopID string) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := s.selectAll(ctx, &customers, "list customers",
		"SELECT "+customerColumns+" FROM customers WHERE shop_id = ? ORDER BY name COLLATE NOCASE ASC", shopID)
	return customers, err
}

func (s *Store) CreateCreditSale(ctx context.Context, c model.CreditSale) error {
	return s.mutate(ctx, "create credit sale", false,
		"INSERT INTO credit_sales ("+creditColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.ShopID, c.CustomerID, c.SaleID, c.ProductName, c.Quantity, c.Amount, c.AmountPaid, c.Status,
		utc(c.CreatedAt), utc(c.UpdatedAt))
}

func (s *Store) GetCreditSale(ctx context.Context, shopID, id string) (model.CreditSale, error) {
	var c model.CreditSale
	err := s.get(ctx, &c, "get credit sale",
		"SELECT "+creditColumns+" FROM credit_sales WHERE shop_id = ? AND id = ?", shopID, id)
	return c, err
}

// GetCreditSaleForUpdate needs no row lock: the single connection already serializes transactions.
func (s *Store) GetCreditSaleForUpdate(ctx context.Context, shopID, id string) (model.CreditSale, error) {
	return s.GetCreditSale(ctx, shopID, id)
}

func (s *Store) ListCreditSales(ctx context.Context, shopID string) ([]model.CreditSale, error) {
	credits := []model.CreditSale{}
	err := s.selectAll(ctx, &credits, "list credit sales",
		"SELECT "+creditColumns+" FROM credit_sales WHERE shop_id = ? ORDER BY created_at DESC", shopID)
	return credits, err
}

func (s *Store) UpdateCreditPayment(ctx context.Context, c model.CreditSale) error {
	return s.mutate(ctx, "update credit sale", true,
		"UPDATE credit_sales SET amount_paid = ?, status = ?, updated_at = ? WHERE shop_id = ? AND id = ?",
		c.AmountPaid, c.Status, utc(c.UpdatedAt), c.ShopID, c.ID)
}

func (s *Store) CreateCreditPayment(ctx context.Context, p model.CreditPayment) error {
	return s.mutate(ctx, "create credit payment", false,
		"INSERT INTO credit_payments (id, credit_sale_id, amount, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.CreditSaleID, p.Amount, utc(p.CreatedAt))
}

func (s *Store) ListCreditPayments(ctx context.Context, shopID, creditID string) ([]model.CreditPayment, error) {
	payments := []model.CreditPayment{}
	err := s.selectAll(ctx, &payments, "list credit payments", `
		SELECT p.id, p.credit_sale_id, p.amount, p.created_at
		FROM credit_payments p
		JOIN credit_sales c ON c.id = p.credit_sale_id
		WHERE c.shop_id = ? AND p.credit_sale_id = ?
		ORDER BY p.created_at ASC`, shopID, creditID)
	return payments, err
}
