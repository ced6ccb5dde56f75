package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Tokens issues and verifies HS256 access tokens carrying the user id as
// the subject claim.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(subjectID string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(subjectID).
		IssuedAt(now).
		Expiration(now.Add(t.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), t.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verify checks the signature and validity window and returns the
// subject (user id).
func (t *Tokens) Verify(raw string) (string, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), t.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return "", fmt.Errorf("token has no subject claim")
	}

	return subject, nil
}
