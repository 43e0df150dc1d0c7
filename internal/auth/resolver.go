// internal/auth/resolver.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when a credential cannot be resolved to a
// user identity.
var ErrInvalidCredential = errors.New("invalid credential")

// IdentityResolver resolves an opaque credential into an authenticated user
// identity. The reward core consumes the resulting userID and never sees the
// credential itself.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (string, error)
}

// JWTResolver verifies HMAC-signed bearer tokens and extracts the subject
// claim as the user identity.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a resolver verifying tokens against the given secret.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve parses and verifies the token and returns its subject.
func (r *JWTResolver) Resolve(ctx context.Context, credential string) (string, error) {
	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredential
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidCredential
	}
	return subject, nil
}
