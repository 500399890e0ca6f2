package middleware // middleware provides shared request processing for handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/lyng148/online-auction/internal/model"
)

// ContextKeyUser is the echo context key under which JWTAuth stores the
// resolved model.UserIdentity.
const ContextKeyUser = "identity"

// ErrInvalidToken is returned by IdentityFromToken for any token that does
// not verify or lacks the required claims.
var ErrInvalidToken = errors.New("invalid token")

// IdentityFromToken verifies an HS256 access token and resolves it to a
// user identity. Tokens are issued by the external identity service; this
// service only validates them. The websocket endpoint uses this directly
// (tokens arrive as a query parameter there), the HTTP middleware wraps it.
func IdentityFromToken(secret, raw string) (model.UserIdentity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return model.UserIdentity{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return model.UserIdentity{}, ErrInvalidToken
    }
    id, _ := claims["sub"].(string)
    email, _ := claims["email"].(string)
    role, _ := claims["role"].(string)
    if id == "" || role == "" {
        return model.UserIdentity{}, ErrInvalidToken
    }
    return model.UserIdentity{ID: id, Email: email, Role: role}, nil
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the resolved identity into the request context. Handlers
// read it back with IdentityFrom.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            identity, err := IdentityFromToken(secret, strings.TrimPrefix(auth, "Bearer "))
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(ContextKeyUser, identity)
            return next(c)
        }
    }
}

// IdentityFrom extracts the identity stored by JWTAuth. The boolean is
// false when the route was not wrapped by the middleware.
func IdentityFrom(c echo.Context) (model.UserIdentity, bool) {
    identity, ok := c.Get(ContextKeyUser).(model.UserIdentity)
    return identity, ok
}
