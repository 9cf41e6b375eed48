package auth

import (
	"context"

	"github.com/central-square/centralsquare/pkg/domain/types"
)

// Identity is the authenticated caller as supplied by the identity
// collaborator fronting this service. This core never performs
// authentication itself; it only consumes the resolved identity.
type Identity struct {
	UserID      types.UserID
	DisplayName string
}

type ctxIdentityKey struct{}

// ContextWithIdentity returns a new context carrying the identity
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, id)
}

// IdentityFromContext returns the identity carried by the context, if any
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxIdentityKey{}).(*Identity)
	if !ok || id == nil || id.UserID == "" {
		return nil, false
	}
	return id, true
}
