package repository

import (
	"context"
	"fmt"

	"duka/manager/internal/model"
)

const productColumns = `id, shop_id, name, category, unit, cost_price, selling_price, quantity,
	low_stock_threshold, created_at, updated_at`

func (r *Store) CreateProduct(ctx context.Context, p model.Product) error {
	_, err := r.getExecutor(ctx).Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.ShopID, p.Name, p.Category, p.Unit, p.CostPrice, p.SellingPrice, p.Quantity,
		p.LowStockThreshold, p.CreatedAt, p.UpdatedAt)
	return mapError(err, "create product")
}

func (r *Store) GetProduct(ctx context.Context, shopID, id string) (model.Product, error) {
	return queryOne[model.Product](ctx, r.getExecutor(ctx), "get product",
		"SELECT "+productColumns+" FROM products WHERE shop_id = $1 AND id = $2", shopID, id)
}

// GetProductForUpdate locks the product row until the surrounding transaction ends.
func (r *Store) GetProductForUpdate(ctx context.Context, shopID, id string) (model.Product, error) {
	return queryOne[model.Product](ctx, r.getExecutor(ctx), "get product",
		"SELECT "+productColumns+" FROM products WHERE shop_id = $1 AND id = $2 FOR UPDATE", shopID, id)
}

func (r *Store) ListProducts(ctx context.Context, shopID string) ([]model.Product, error) {
	return queryAll[model.Product](ctx, r.getExecutor(ctx), "list products",
		"SELECT "+productColumns+" FROM products WHERE shop_id = $1 ORDER BY name ASC", shopID)
}

func (r *Store) UpdateProduct(ctx context.Context, p model.Product) error {
	tag, err := r.getExecutor(ctx).Exec(ctx, `
		UPDATE products
		SET name = $3, category = $4, unit = $5, cost_price = $6, selling_price = $7,
			quantity = $8, low_stock_threshold = $9, updated_at = $10
		WHERE shop_id = $1 AND id = $2`,
		p.ShopID, p.ID, p.Name, p.Category, p.Unit, p.CostPrice, p.SellingPrice,
		p.Quantity, p.LowStockThreshold, p.UpdatedAt)
	if err != nil {
		return mapError(err, "update product")
	}
	return expectRow(tag, "update product")
}

// DecrementStock removes quantity units from stock, refusing to go below zero.
func (r *Store) DecrementStock(ctx context.Context, shopID, id string, quantity int) error {
	tag, err := r.getExecutor(ctx).Exec(ctx, `
		UPDATE products SET quantity = quantity - $3, updated_at = now()
		WHERE shop_id = $1 AND id = $2 AND quantity >= $3`,
		shopID, id, quantity)
	if err != nil {
		return mapError(err, "update product stock")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, model.ErrInsufficientStock)
	}
	return nil
}

func (r *Store) DeleteProduct(ctx context.Context, shopID, id string) error {
	tag, err := r.getExecutor(ctx).Exec(ctx, "DELETE FROM products WHERE shop_id = $1 AND id = $2", shopID, id)
	if err != nil {
		return mapError(err, "delete product")
	}
	return expectRow(tag, "delete product")
}
