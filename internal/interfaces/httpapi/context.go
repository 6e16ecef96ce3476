package httpapi

import (
	"context"

	"github.com/riskibarqy/fitness-league/internal/domain/athlete"
	"github.com/riskibarqy/fitness-league/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	identityContextKey  contextKey = "athlete_identity"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withIdentity(ctx context.Context, identity athlete.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func identityFromContext(ctx context.Context) (athlete.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(athlete.Identity)
	return identity, ok
}
