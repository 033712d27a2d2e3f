package sqlite

import (
	"context"

	"duka/manager/internal/model"
)

const expenseColumns = "id, shop_id, category, description, amount, date, created_at"

func (s *Store) CreateExpense(ctx context.Context, e model.Expense) error {
	return s.mutate(ctx, "create expense", false,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.ShopID, e.Category, e.Description, e.Amount, e.Date.Format("2006-01-02"), utc(e.CreatedAt))
}

func (s *Store) ListExpenses(ctx context.Context, shopID string) ([]model.Expense, error) {
	expenses := []model.Expense{}
	err := s.selectAll(ctx, &expenses, "list expenses",
		"SELECT "+expenseColumns+" FROM expenses WHERE shop_id = ? ORDER BY date DESC, created_at DESC", shopID)
	return expenses, err
}

func (s *Store) DeleteExpense(ctx context.Context, shopID, id string) error {
	return s.mutate(ctx, "delete expense", true, "DELETE FROM expenses WHERE shop_id = ? AND id = ?", shopID, id)
}
