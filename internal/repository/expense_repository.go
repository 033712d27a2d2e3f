package repository

import (
	"context"

	"duka/manager/internal/model"
)

const expenseColumns = "id, shop_id, category, description, amount, date, created_at"

func (r *Store) CreateExpense(ctx context.Context, e model.Expense) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7)",
		e.ID, e.ShopID, e.Category, e.Description, e.Amount, e.Date, e.CreatedAt)
	return mapError(err, "create expense")
}

func (r *Store) ListExpenses(ctx context.Context, shopID string) ([]model.Expense, error) {
	return queryAll[model.Expense](ctx, r.getExecutor(ctx), "list expenses",
		"SELECT "+expenseColumns+" FROM expenses WHERE shop_id = $1 ORDER BY date DESC, created_at DESC", shopID)
}

func (r *Store) DeleteExpense(ctx context.Context, shopID, id string) error {
	tag, err := r.getExecutor(ctx).Exec(ctx, "DELETE FROM expenses WHERE shop_id = $1 AND id = $2", shopID, id)
	if err != nil {
		return mapError(err, "delete expense")
	}
	return expectRow(tag, "delete expense")
}
