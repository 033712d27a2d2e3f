package repository

import (
	"context"

	"duka/manager/internal/model"
)

const saleColumns = "id, shop_id, product_id, product_name, quantity, unit_price, cost_price, total_amount, created_at"

func (r *Store) CreateSale(ctx context.Context, s model.Sale) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO sales ("+saleColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		s.ID, s.ShopID, s.ProductID, s.ProductName, s.Quantity, s.UnitPrice, s.CostPrice, s.TotalAmount, s.CreatedAt)
	return mapError(err, "create sale")
}

func (r *Store) ListSales(ctx context.Context, shopID string) ([]model.Sale, error) {
	return queryAll[model.Sale](ctx, r.getExecutor(ctx), "list sales",
		"SELECT "+saleColumns+" FROM sales WHERE shop_id = $1 ORDER BY created_at DESC", shopID)
}
