package model

import "time"

type Role string

const (
	RoleOwner     Role = "owner"
	RoleAttendant Role = "attendant"
)

type Shop struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile mirrors the identity held by the auth provider.
type Profile struct {
	ID       string `db:"id" json:"id"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"full_name"`
}

type Member struct {
	ID        string    `db:"id" json:"id"`
	ShopID    string    `db:"shop_id" json:"shop_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (m Member) IsOwner() bool {
	return m.Role == RoleOwner
}

// Employee is a member joined with its profile.
type Employee struct {
	ID       string `db:"id" json:"id"`
	UserID   string `db:"user_id" json:"user_id"`
	Role     Role   `db:"role" json:"role"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"full_name"`
}
