package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/frahmantamala/user-management/internal"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenIssuer signs and validates session tokens with a symmetric
// secret (HS256). Configuration is loaded once at startup and immutable for
// the process lifetime.
type SessionTokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewSessionTokenIssuer(cfg internal.SecurityConfig) (*SessionTokenIssuer, error) {
	if cfg.JWTSecret == "" {
		return nil, internal.NewConfigError("jwt secret is not configured", internal.ErrCodeValidationFailed)
	}
	ttl := cfg.TokenDuration
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &SessionTokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      ttl,
	}, nil
}

// Issue creates a signed token for the subject. The role claim is the first
// active access level name; a user with no active assignment gets a token
// without a role claim at all.
func (i *SessionTokenIssuer) Issue(subject TokenSubject) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	claims := &Claims{
		Name:  subject.Name,
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject.UserID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if len(subject.RoleNames) > 0 {
		claims.Role = subject.RoleNames[0]
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Validate parses and verifies a token: HMAC signature, lifetime, issuer and
// audience all have to match.
func (i *SessionTokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// RoleClaims returns the role claim strings carried by the token; zero or
// one entry in this model.
func (c *Claims) RoleClaims() []string {
	if c.Role == "" {
		return nil
	}
	return []string{c.Role}
}

// UserID parses the subject back into the numeric user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
