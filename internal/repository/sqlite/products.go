package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"duka/manager/internal/model"
)

const productColumns = `id, shop_id, name, category, unit, cost_price, selling_price, quantity,
	low_stock_threshold, created_at, updated_at`

func (s *Store) CreateProduct(ctx context.Context, p model.Product) error {
	return s.mutate(ctx, "create product", false,
		"INSERT INTO products ("+productColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.ShopID, p.Name, p.Category, p.Unit, p.CostPrice, p.SellingPrice, p.Quantity,
		p.LowStockThreshold, utc(p.CreatedAt), utc(p.UpdatedAt))
}

func (s *Store) GetProduct(ctx context.Context, shopID, id string) (model.Product, error) {
	var p model.Product
	err := s.get(ctx, &p, "get product",
		"SELECT "+productColumns+" FROM products WHERE shop_id = ? AND id = ?", shopID, id)
	return p, err
}

// GetProductForUpdate is GetProduct; the single connection already serializes transactions.
func (s *Store) GetProductForUpdate(ctx context.Context, shopID, id string) (model.Product, error) {
	return s.GetProduct(ctx, shopID, id)
}

func (s *Store) ListProducts(ctx context.Context, shopID string) ([]model.Product, error) {
	products := []model.Product{}
	err := s.selectAll(ctx, &products, "list products",
		"SELECT "+productColumns+" FROM products WHERE shop_id = ? ORDER BY name COLLATE NOCASE ASC", shopID)
	return products, err
}

func (s *Store) UpdateProduct(ctx context.Context, p model.Product) error {
	return s.mutate(ctx, "update product", true, `
		UPDATE products
		SET name = ?, category = ?, unit = ?, cost_price = ?, selling_price = ?,
			quantity = ?, low_stock_threshold = ?, updated_at = ?
		WHERE shop_id = ? AND id = ?`,
		p.Name, p.Category, p.Unit, p.CostPrice, p.SellingPrice,
		p.Quantity, p.LowStockThreshold, utc(p.UpdatedAt), p.ShopID, p.ID)
}

func (s *Store) DecrementStock(ctx context.Context, shopID, id string, quantity int) error {
	err := s.mutate(ctx, "update product stock", true, `
		UPDATE products SET quantity = quantity - ?, updated_at = ?
		WHERE shop_id = ? AND id = ? AND quantity >= ?`,
		quantity, utc(time.Now()), shopID, id, quantity)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("product %s: %w", id, model.ErrInsufficientStock)
	}
	return err
}

func (s *Store) DeleteProduct(ctx context.Context, shopID, id string) error {
	return s.mutate(ctx, "delete product", true, "DELETE FROM products WHERE shop_id = ? AND id = ?", shopID, id)
}
