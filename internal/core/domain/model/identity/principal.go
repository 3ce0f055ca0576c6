package identity

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
)

var (
	// ErrUnauthenticated is returned when no principal is attached to the request.
	ErrUnauthenticated = errors.New("authentication is required")

	// ErrForbidden is returned when the principal holds none of the required roles.
	ErrForbidden = errors.New("access is denied")
)

// Principal is the authenticated user on whose behalf a use case runs.
type Principal struct {
	userID kernel.UUID
	roles  RoleSet
}

// NewPrincipal requires a valid user id and at least one role.
func NewPrincipal(userID kernel.UUID, roles ...Role) (Principal, error) {
	if err := userID.Validate(); err != nil {
		return Principal{}, err
	}
	if len(roles) == 0 {
		return Principal{}, ErrUnauthenticated
	}
	return Principal{userID: userID, roles: NewRoleSet(roles...)}, nil
}

// UserID returns the acting user's identifier.
func (p Principal) UserID() kernel.UUID {
	return p.userID
}

// HasRole reports whether the principal holds r.
func (p Principal) HasRole(r Role) bool {
	return p.roles.Has(r)
}

// IsAuthenticated is false for the zero Principal.
func (p Principal) IsAuthenticated() bool {
	return p.userID.Validate() == nil && len(p.roles) > 0
}

// Authorize is the role check applied at the HTTP boundary: the principal must be
// authenticated and, when allowed is non-empty, hold at least one of its roles.
func Authorize(p Principal, allowed RoleSet) error {
	if !p.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if len(allowed) == 0 || p.roles.Intersects(allowed) {
		return nil
	}
	return ErrForbidden
}

// CanActFor reports whether p may read or modify data owned by ownerID.
// Staff and admins act for anyone; customers only for themselves.
func CanActFor(p Principal, ownerID kernel.UUID) bool {
	if p.HasRole(Admin) || p.HasRole(Staff) {
		return true
	}
	return p.userID.IsEqual(ownerID)
}
