package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

var tracer = otel.Tracer("authgate")

var errMissingToken = errors.New("missing authorization header")

// RequireSignIn verifies the credential in the Authorization header and
// attaches the caller as a domain.Principal. The header carries the raw
// token; a "Bearer " prefix is accepted as well.
//
// On failure the request stops here with 401 and next is never called.
func RequireSignIn(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "AuthGate.RequireSignIn")
			defer span.End()

			token := credential(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				span.RecordError(errMissingToken)
				return unauthenticated(c, log, errMissingToken)
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				span.RecordError(err)
				return unauthenticated(c, log, err)
			}

			span.SetAttributes(attribute.String("principal.id", userID))
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(PrincipalKey, domain.Principal{ID: userID, Role: domain.RoleStandard})
			return next(c)
		}
	}
}

func credential(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}

func unauthenticated(c echo.Context, log zerolog.Logger, cause error) error {
	metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
	log.Warn().
		Err(cause).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("ip", c.RealIP()).
		Msg("sign-in required")
	return c.JSON(http.StatusUnauthorized, rejection{Message: "Unauthorized"})
}
