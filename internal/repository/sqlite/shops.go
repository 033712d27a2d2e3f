package sqlite

import (
	"context"

	"duka/manager/internal/model"
)

func (s *Store) CreateShop(ctx context.Context, shop model.Shop) error {
	return s.mutate(ctx, "create shop", false,
		"INSERT INTO shops (id, name, created_at) VALUES (?, ?, ?)", shop.ID, shop.Name, utc(shop.CreatedAt))
}

func (s *Store) GetShop(ctx context.Context, id string) (model.Shop, error) {
	var shop model.Shop
	err := s.get(ctx, &shop, "get shop", "SELECT id, name, created_at FROM shops WHERE id = ?", id)
	return shop, err
}

func (s *Store) CreateProfile(ctx context.Context, p model.Profile) error {
	return s.mutate(ctx, "create profile", false, `
		INSERT INTO profiles (id, email, full_name) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET email = excluded.email, full_name = excluded.full_name`,
		p.ID, p.Email, p.FullName)
}

func (s *Store) CreateMember(ctx context.Context, m model.Member) error {
	return s.mutate(ctx, "create member", false,
		"INSERT INTO shop_members (id, shop_id, user_id, role, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.ShopID, m.UserID, m.Role, utc(m.CreatedAt))
}

func (s *Store) GetMemberByUser(ctx context.Context, userID string) (model.Member, error) {
	var m model.Member
	err := s.get(ctx, &m, "get membership",
		"SELECT id, shop_id, user_id, role, created_at FROM shop_members WHERE user_id = ?", userID)
	return m, err
}

func (s *Store) GetMember(ctx context.Context, shopID, id string) (model.Member, error) {
	var m model.Member
	err := s.get(ctx, &m, "get member",
		"SELECT id, shop_id, user_id, role, created_at FROM shop_members WHERE shop_id = ? AND id = ?", shopID, id)
	return m, err
}

func (s *Store) ListEmployees(ctx context.Context, shopID string) ([]model.Employee, error) {
	employees := []model.Employee{}
	err := s.selectAll(ctx, &employees, "list employees", `
		SELECT m.id, m.user_id, m.role, COALESCE(p.email, 'Unknown') AS email, COALESCE(p.full_name, 'Unknown') AS full_name
		FROM shop_members m
		LEFT JOIN profiles p ON p.id = m.user_id
		WHERE m.shop_id = ? AND m.role = ?
		ORDER BY m.created_at`, shopID, model.RoleAttendant)
	return employees, err
}

func (s *Store) DeleteMember(ctx context.Context, shopID, id string) error {
	return s.mutate(ctx, "delete member", true, "DELETE FROM shop_members WHERE shop_id = ? AND id = ?", shopID, id)
}
