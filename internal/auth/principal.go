package auth

import "context"

// Principal is the authenticated user on whose behalf a request runs.
// Metadata carries whatever profile fields the identity provider supplied
// (name, country, location, locale); keys vary by provider.
type Principal struct {
	ID       string
	Email    string
	Metadata map[string]string
}

type ctxKey string

const principalKey ctxKey = "prospect.principal"

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext extracts the principal if present.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	val := ctx.Value(principalKey)
	if val == nil {
		return Principal{}, false
	}
	p, ok := val.(Principal)
	return p, ok && p.ID != ""
}
