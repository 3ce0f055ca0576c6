package http

import (
	"strings"

	"cafe/internal/core/domain/model/identity"
	"cafe/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserRoles = "X-User-Roles"

	principalKey = "principal"
)

// Identity resolves the principal set by the gateway. Requests without the
// headers continue anonymously; malformed headers are rejected.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if rawID == "" {
				return next(c)
			}

			principal, err := parsePrincipal(rawID, c.Request().Header.Get(HeaderUserRoles))
			if err != nil {
				return err
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func parsePrincipal(rawID, rawRoles string) (identity.Principal, error) {
	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return identity.Principal{}, identity.ErrUnauthenticated
	}

	var roles []identity.Role
	for _, name := range strings.Split(rawRoles, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		role, roleErr := identity.ParseRole(name)
		if roleErr != nil {
			return identity.Principal{}, identity.ErrUnauthenticated
		}
		roles = append(roles, role)
	}

	return identity.NewPrincipal(userID, roles...)
}

// PrincipalFrom returns the resolved principal or the zero Principal.
func PrincipalFrom(c echo.Context) identity.Principal {
	p, _ := c.Get(principalKey).(identity.Principal)
	return p
}

// RequireRoles applies identity.Authorize. An empty set admits any
// authenticated principal.
func RequireRoles(allowed identity.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := identity.Authorize(PrincipalFrom(c), allowed); err != nil {
				return err
			}
			return next(c)
		}
	}
}
