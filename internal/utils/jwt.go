package utils // package utils provides token helpers shared by tooling and tests

import (
    "time"

    "github.com/golang-jwt/jwt/v5"

    "github.com/lyng148/online-auction/internal/model"
)

// NewAccessToken builds and signs an HS256 JWT carrying the claims this
// service verifies (sub, email, role). Production tokens come from the
// external identity service; this helper exists for local development and
// for tests that need a verifiable token.
func NewAccessToken(secret string, user model.UserIdentity, ttl time.Duration) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "sub":   user.ID,
        "email": user.Email,
        "role":  user.Role,
        "exp":   now.Add(ttl).Unix(),
        "iat":   now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}
