package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"remindmail/internal/application/dto"
	"remindmail/internal/domain/constant"
	"remindmail/internal/pkg/logger"
)

// Token verification happens upstream; the verifier forwards the proven identity in
// these headers. Requests arriving without them are rejected.
const (
	HeaderProvider = "X-Auth-Provider"
	HeaderSubject  = "X-Auth-Subject"
	HeaderEmail    = "X-Auth-Email"

	identityKey = "identity"
)

// RequireIdentity extracts the authenticated caller identity from request headers
// and stores it in the request context for handlers.
func RequireIdentity(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			providerRaw := c.Request().Header.Get(HeaderProvider)
			subject := strings.TrimSpace(c.Request().Header.Get(HeaderSubject))
			email := strings.TrimSpace(c.Request().Header.Get(HeaderEmail))

			if providerRaw == "" || subject == "" || email == "" {
				return c.JSON(http.StatusUnauthorized, dto.APIErrorResponse{
					ErrorCode: "UNAUTHORIZED",
					Message:   "Missing authenticated identity",
				})
			}

			provider, err := constant.ParseOAuthProvider(providerRaw)
			if err != nil {
				log.Warn("Rejected request with unknown identity provider " + providerRaw)
				return c.JSON(http.StatusUnauthorized, dto.APIErrorResponse{
					ErrorCode: "UNAUTHORIZED",
					Message:   "Unknown identity provider",
				})
			}

			c.Set(identityKey, dto.Identity{
				Provider:  provider,
				SubjectID: subject,
				Email:     email,
			})
			return next(c)
		}
	}
}

// IdentityFrom returns the caller identity stored by RequireIdentity.
func IdentityFrom(c echo.Context) (dto.Identity, bool) {
	identity, ok := c.Get(identityKey).(dto.Identity)
	return identity, ok
}
