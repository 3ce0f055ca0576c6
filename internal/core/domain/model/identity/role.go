// Package identity models the acting user of a request and the role check
// applied before every use case.
package identity

import (
	"fmt"
	"strings"

	"cafe/internal/pkg/errs"
)

// Role is a coarse permission group assigned by the identity provider.
type Role string

const (
	Admin    Role = "ADMIN"
	Staff    Role = "STAFF"
	Customer Role = "CUSTOMER"
)

// ParseRole accepts role names case-insensitively, with or without a "ROLE_" prefix.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "ROLE_")

	switch Role(name) {
	case Admin, Staff, Customer:
		return Role(name), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", s))
	}
}

// RoleSet is an unordered collection of roles.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles, dropping duplicates.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Intersects reports whether the sets share at least one role.
func (s RoleSet) Intersects(other RoleSet) bool {
	for r := range s {
		if other.Has(r) {
			return true
		}
	}
	return false
}
