package repository

import (
	"context"

	"duka/manager/internal/model"
)

func (r *Store) CreateShop(ctx context.Context, shop model.Shop) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO shops (id, name, created_at) VALUES ($1, $2, $3)",
		shop.ID, shop.Name, shop.CreatedAt)
	return mapError(err, "create shop")
}

func (r *Store) GetShop(ctx context.Context, id string) (model.Shop, error) {
	return queryOne[model.Shop](ctx, r.getExecutor(ctx), "get shop",
		"SELECT id, name, created_at FROM shops WHERE id = $1", id)
}

// CreateProfile stores the identity, refreshing email and name when it already exists.
func (r *Store) CreateProfile(ctx context.Context, p model.Profile) error {
	_, err := r.getExecutor(ctx).Exec(ctx, `
		INSERT INTO profiles (id, email, full_name) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, full_name = EXCLUDED.full_name`,
		p.ID, p.Email, p.FullName)
	return mapError(err, "create profile")
}

func (r *Store) CreateMember(ctx context.Context, m model.Member) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO shop_members (id, shop_id, user_id, role, created_at) VALUES ($1, $2, $3, $4, $5)",
		m.ID, m.ShopID, m.UserID, m.Role, m.CreatedAt)
	return mapError(err, "create member")
}

func (r *Store) GetMemberByUser(ctx context.Context, userID string) (model.Member, error) {
	return queryOne[model.Member](ctx, r.getExecutor(ctx), "get membership",
		"SELECT id, shop_id, user_id, role, created_at FROM shop_members WHERE user_id = $1", userID)
}

func (r *Store) GetMember(ctx context.Context, shopID, id string) (model.Member, error) {
	return queryOne[model.Member](ctx, r.getExecutor(ctx), "get member",
		"SELECT id, shop_id, user_id, role, created_at FROM shop_members WHERE shop_id = $1 AND id = $2", shopID, id)
}

// ListEmployees returns the shop's attendants with their profile details.
func (r *Store) ListEmployees(ctx context.Context, shopID string) ([]model.Employee, error) {
	return queryAll[model.Employee](ctx, r.getExecutor(ctx), "list employees", `
		SELECT m.id, m.user_id, m.role, COALESCE(p.email, 'Unknown') AS email, COALESCE(p.full_name, 'Unknown') AS full_name
		FROM shop_members m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.shop_id = $1 AND m.role = $2
		ORDER BY m.created_at`, shopID, model.RoleAttendant)
}

func (r *Store) DeleteMember(ctx context.Context, shopID, id string) error {
	tag, err := r.getExecutor(ctx).Exec(ctx, "DELETE FROM shop_members WHERE shop_id = $1 AND id = $2", shopID, id)
	if err != nil {
		return mapError(err, "delete member")
	}
	return expectRow(tag, "delete member")
}
