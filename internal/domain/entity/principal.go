package entity

import "context"

// Principal is the authenticated caller.
type Principal struct {
	UserID         uint
	Email          string
	Role           string
	HealthAgencyID *uint
	TokenID        string
}

func (p Principal) HasRole(roles ...string) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// CanManageUser reports whether p may modify the user with id.
func (p Principal) CanManageUser(id uint) bool {
	return p.UserID == id || p.Role == RoleSuperAdmin
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
