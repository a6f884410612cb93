package stationprefs

import "context"

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the identity id. An empty id
// leaves ctx unauthenticated.
func WithIdentity(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}

// ContextIdentity resolves the identity from the call context. It is the
// default IdentityResolver.
type ContextIdentity struct{}

// CurrentIdentity implements IdentityResolver.
func (ContextIdentity) CurrentIdentity(ctx context.Context) (string, bool) {
	return IdentityFromContext(ctx)
}

// IdentityFunc adapts a function to IdentityResolver.
type IdentityFunc func(ctx context.Context) (string, bool)

// CurrentIdentity implements IdentityResolver.
func (f IdentityFunc) CurrentIdentity(ctx context.Context) (string, bool) {
	return f(ctx)
}
