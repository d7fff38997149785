package middleware

import (
	"strings"

	"marketplace-api/core/cache"
	"marketplace-api/core/constants"
	"marketplace-api/core/controller"
	"marketplace-api/core/errors"
	"marketplace-api/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles request middlewares that need access to shared services
type Middleware struct {
	cache cache.Cache
	base  controller.BaseController
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{
		cache: c,
		base:  controller.NewBaseController(),
	}
}

// AuthMiddleware validates the Bearer token, rejects blacklisted or
// non-access-scope tokens and stores the claims on the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "Invalid authorization header format")
			}
			token := parts[1]

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				return m.base.InternalServerError(errors.ErrInternalServer, "Failed to verify token")
			}
			if blacklisted {
				return m.base.Unauthorized(errors.ErrUnauthorized, "Token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return m.base.Unauthorized(errors.ErrTokenExpired, "Invalid or expired token")
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return m.base.Unauthorized(errors.ErrUnauthorized, "Token scope not allowed")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequireRole allows the request through only when the authenticated user
// carries one of the given roles. Must run after AuthMiddleware.
func (m *Middleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData := c.Get(constants.ContextTokenData)
			claims, ok := tokenData.(*utils.TokenClaims)
			if !ok || claims == nil {
				return m.base.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
			}

			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}

			return m.base.Forbidden(errors.ErrForbidden, "Insufficient role")
		}
	}
}
