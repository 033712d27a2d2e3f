package sqlite

import (
	"context"

	"duka/manager/internal/model"
)

const saleColumns = "id, shop_id, product_id, product_name, quantity, unit_price, cost_price, total_amount, created_at"

func (s *Store) CreateSale(ctx context.Context, sale model.Sale) error {
	return s.mutate(ctx, "create sale", false,
		"INSERT INTO sales ("+saleColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sale.ID, sale.ShopID, sale.ProductID, sale.ProductName, sale.Quantity,
		sale.UnitPrice, sale.CostPrice, sale.TotalAmount, utc(sale.CreatedAt))
}

func (s *Store) ListSales(ctx context.Context, shopID string) ([]model.Sale, error) {
	sales := []model.Sale{}
	err := s.selectAll(ctx, &sales, "list sales",
		"SELECT "+saleColumns+" FROM sales WHERE shop_id = ? ORDER BY created_at DESC", shopID)
	return sales, err
}
