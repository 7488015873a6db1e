package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload. Role carries the name of the user's
// active access level and is omitted entirely when no active assignment
// exists.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller reconstructed from token claims on
// each request. RoleClaims holds raw claim strings; mapping back to the
// level enumeration happens only inside the authorization engine.
type Principal struct {
	UserID     int64    `json:"user_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	RoleClaims []string `json:"role_claims,omitempty"`
}

// TokenSubject is the identity a session token is issued for.
type TokenSubject struct {
	UserID int64
	Name   string
	Email  string
	// RoleNames are the user's active access level names in assignment
	// order; in practice zero or one.
	RoleNames []string
}

type TokenIssuerAPI interface {
	Issue(subject TokenSubject) (token string, expiresAt time.Time, err error)
	Validate(tokenString string) (*Claims, error)
}

type ctxKey string

const ContextUserKey ctxKey = "principal"

func UserFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	return p, ok
}

func ContextWithUser(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}
