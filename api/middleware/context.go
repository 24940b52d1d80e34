package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// ActorFromContext returns the authenticated account id and role. The id is
// uuid.Nil when the request carries no valid identity.
func ActorFromContext(ctx context.Context) (uuid.UUID, enums.AccountRole) {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		id = uuid.Nil
	}
	return id, enums.AccountRole(RoleFromContext(ctx))
}

// WithActor injects the account identity into the context.
func WithActor(ctx context.Context, userID uuid.UUID, role enums.AccountRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID.String())
	return context.WithValue(ctx, ctxRole, string(role))
}
