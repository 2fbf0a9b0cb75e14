package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenUser is the single trusted claim inside an issued token: the
// identifier of the principal it was issued to.
type TokenUser struct {
	ID uuid.UUID `json:"id"`
}

// TokenClaims is the payload of a bearer token. The wire shape is
// {"user":{"id":...}} plus the registered issued-at and expiry claims.
type TokenClaims struct {
	jwt.RegisteredClaims
	User TokenUser `json:"user"`
}
