package auth

import (
	"context"

	"duka/manager/internal/model"
)

type memberKey struct{}

// WithMember stores the authenticated shop member on the request context.
func WithMember(ctx context.Context, m model.Member) context.Context {
	return context.WithValue(ctx, memberKey{}, m)
}

func MemberFrom(ctx context.Context) (model.Member, bool) {
	m, ok := ctx.Value(memberKey{}).(model.Member)
	return m, ok
}
