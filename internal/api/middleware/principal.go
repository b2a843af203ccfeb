package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
)

// PrincipalKey is the echo context key RequireSignIn stores the caller under.
const PrincipalKey = "principal"

// PrincipalFrom returns the principal attached by RequireSignIn.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok || p.ID == "" {
		return domain.Principal{}, false
	}
	return p, true
}

// rejection is the body written by every gate in this package.
type rejection struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
