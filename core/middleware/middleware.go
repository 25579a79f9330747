package middleware

import (
	"strings"

	"scheduling-gateway/core/config"
	"scheduling-gateway/core/controller"
	"scheduling-gateway/core/errors"
	"scheduling-gateway/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-Id"

type Middleware struct {
	cfg *config.Config
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// RequestID attaches a correlation id to every request: the caller's
// X-Request-Id when present, a generated one otherwise. The id is echoed in
// the response header and stored on the echo context for the envelope.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = utils.GenerateRequestID()
			}
			c.Response().Header().Set(RequestIDHeader, id)
			c.Set(controller.RequestIDKey, id)
			return next(c)
		}
	}
}

// AdminAuth guards operational endpoints with an HS256 bearer token. With no
// secret configured the endpoints are unconditionally rejected.
func (m *Middleware) AdminAuth() echo.MiddlewareFunc {
	base := controller.NewBaseController()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secret := m.cfg.Admin.JWTSecret
			if secret == "" {
				return base.Error(c, errors.NewAppError(errors.ErrUnauthorized, "Admin endpoints are disabled", nil))
			}

			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return base.Error(c, errors.NewAppError(errors.ErrUnauthorized, "No token provided", nil))
			}
			token := strings.TrimPrefix(header, "Bearer ")

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.NewAppError(errors.ErrUnauthorized, "Unexpected signing method", nil)
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				return base.Error(c, errors.NewAppError(errors.ErrUnauthorized, "Invalid token", err))
			}
			return next(c)
		}
	}
}
