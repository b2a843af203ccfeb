package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/ports"
)

// RequireAdmin admits only callers whose stored account currently holds the
// administrator role. It must run after RequireSignIn. The role is read from
// the user repository on every request.
func RequireAdmin(users ports.UserFinder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "AuthGate.RequireAdmin")
			defer span.End()

			principal, ok := PrincipalFrom(c)
			if !ok {
				return forbidden(c)
			}
			span.SetAttributes(attribute.String("principal.id", principal.ID))

			user, err := users.FindByID(ctx, principal.ID)
			if err != nil {
				span.RecordError(err)
				log.Warn().Err(err).Str("user_id", principal.ID).Msg("admin check: user lookup failed")
				return forbidden(c)
			}
			if !user.IsAdmin() {
				log.Info().Str("user_id", principal.ID).Str("path", c.Path()).Msg("admin check: access denied")
				return forbidden(c)
			}

			principal.Role = user.Role
			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

func forbidden(c echo.Context) error {
	metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
	return c.JSON(http.StatusUnauthorized, rejection{Message: "UnAuthorized Access"})
}
