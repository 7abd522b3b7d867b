package middleware

import (
	"strings"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/labstack/echo/v4"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	userContextKey = "user"
)

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// Authenticate accepts the access token from the Authorization header or the
// accessToken cookie and stores the principal on the echo context.
func Authenticate(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authService.AuthorizeRequest(c.Request().Context(), bearerToken(c))
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return response.WriteErrorResponse(c, errs.ErrForbidden, nil)
		}
	}
}

func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(userContextKey).(domain.User)
	return user, ok
}
