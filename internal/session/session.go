// Package session carries the signed-in operator through a request context.
package session

import "context"

// Identity is the operator a request acts on behalf of.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
	TokenID     string
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// CurrentUser returns the operator bound to ctx, if any.
func CurrentUser(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}

// Authenticated reports whether ctx carries a signed-in operator.
func Authenticated(ctx context.Context) bool {
	_, ok := CurrentUser(ctx)
	return ok
}
