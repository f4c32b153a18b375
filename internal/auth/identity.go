package auth

import (
	"context"

	"github.com/google/uuid"
)

type identityCtxKey struct{}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID uuid.UUID
	Token  string
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok && identity.UserID != uuid.Nil
}
