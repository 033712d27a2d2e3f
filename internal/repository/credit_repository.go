package repository

import (
	"context"

	"duka/manager/internal/model"
)

const (
	customerColumns = "id, shop_id, name, phone, email, created_at"
	creditColumns   = `id, shop_id, customer_id, sale_id, product_name, quantity, amount, amount_paid, status,
	created_at, updated_at`
)

func (r *Store) CreateCustomer(ctx context.Context, c model.Customer) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO customers ("+customerColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		c.ID, c.ShopID, c.Name, c.Phone, c.Email, c.CreatedAt)
	return mapError(err, "create customer")
}

func (r *Store) GetCustomer(ctx context.Context, shopID, id string) (model.Customer, error) {
	return queryOne[model.Customer](ctx, r.getExecutor(ctx), "get customer",
		"SELECT "+customerColumns+" FROM customers WHERE shop_id = $1 AND id = $2", shopID, id)
}

func (r *Store) ListCustomers(ctx context.Context, shopID string) ([]model.Customer, error) {
	return queryAll[model.Customer](ctx, r.getExecutor(ctx), "list customers",
		"SELECT "+customerColumns+" FROM customers WHERE shop_id = $1 ORDER BY name ASC", shopID)
}

func (r *Store) CreateCreditSale(ctx context.Context, c model.CreditSale) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO credit_sales ("+creditColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		c.ID, c.ShopID, c.CustomerID, c.SaleID, c.ProductName, c.Quantity, c.Amount, c.AmountPaid, c.Status,
		c.CreatedAt, c.UpdatedAt)
	return mapError(err, "create credit sale")
}

func (r *Store) GetCreditSale(ctx context.Context, shopID, id string) (model.CreditSale, error) {
	return queryOne[model.CreditSale](ctx, r.getExecutor(ctx), "get credit sale",
		"SELECT "+creditColumns+" FROM credit_sales WHERE shop_id = $1 AND id = $2", shopID, id)
}

// GetCreditSaleForUpdate locks the credit row so concurrent payments apply one after another.
func (r *Store) GetCreditSaleForUpdate(ctx context.Context, shopID, id string) (model.CreditSale, error) {
	return queryOne[model.CreditSale](ctx, r.getExecutor(ctx), "get credit sale",
		"SELECT "+creditColumns+" FROM credit_sales WHERE shop_id = $1 AND id = $2 FOR UPDATE", shopID, id)
}

func (r *Store) ListCreditSales(ctx context.Context, shopID string) ([]model.CreditSale, error) {
	return queryAll[model.CreditSale](ctx, r.getExecutor(ctx), "list credit sales",
		"SELECT "+creditColumns+" FROM credit_sales WHERE shop_id = $1 ORDER BY created_at DESC", shopID)
}

func (r *Store) UpdateCreditPayment(ctx context.Context, c model.CreditSale) error {
	tag, err := r.getExecutor(ctx).Exec(ctx,
		"UPDATE credit_sales SET amount_paid = $3, status = $4, updated_at = $5 WHERE shop_id = $1 AND id = $2",
		c.ShopID, c.ID, c.AmountPaid, c.Status, c.UpdatedAt)
	if err != nil {
		return mapError(err, "update credit sale")
	}
	return expectRow(tag, "update credit sale")
}

func (r *Store) CreateCreditPayment(ctx context.Context, p model.CreditPayment) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO credit_payments (id, credit_sale_id, amount, created_at) VALUES ($1, $2, $3, $4)",
		p.ID, p.CreditSaleID, p.Amount, p.CreatedAt)
	return mapError(err, "create credit payment")
}

func (r *Store) ListCreditPayments(ctx context.Context, shopID, creditID string) ([]model.CreditPayment, error) {
	return queryAll[model.CreditPayment](ctx, r.getExecutor(ctx), "list credit payments", `
		SELECT p.id, p.credit_sale_id, p.amount, p.created_at
		FROM credit_payments p
		JOIN credit_sales c ON c.id = p.credit_sale_id
		WHERE c.shop_id = $1 AND p.credit_sale_id = $2
		ORDER BY p.created_at ASC`, shopID, creditID)
}
