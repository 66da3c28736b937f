package handler

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerIDKey = "caller_id"

// AuthMiddleware validates the bearer token the external auth provider
// issued and stores its subject as the caller id. Token issuance and
// session handling live entirely in that provider; only the HS256
// signature and the subject claim are checked here.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				code, body := httpError(ErrUnauthorized)
				return c.JSON(code, body)
			}

			token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				code, body := httpError(ErrUnauthorized)
				return c.JSON(code, body)
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				code, body := httpError(ErrUnauthorized)
				return c.JSON(code, body)
			}

			c.Set(callerIDKey, sub)
			return next(c)
		}
	}
}

func (h *AdminHandler) extractCallerID(c echo.Context) (string, error) {
	callerID, _ := c.Get(callerIDKey).(string)
	if callerID == "" {
		return "", ErrUnauthorized
	}
	return callerID, nil
}
