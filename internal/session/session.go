package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued session stays valid unless configured otherwise.
const DefaultTTL = 30 * time.Minute

// purposeAccess distinguishes session tokens from any future token kind.
const purposeAccess = "access"

// Authenticator issues and validates signed session tokens. Tokens are the
// only session state: nothing is persisted server-side, so there is no
// revocation before natural expiry.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(secret []byte, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Authenticator{secret: secret, ttl: ttl}
}

// NewSecret returns a random signing secret for processes started without
// SESSION_SECRET. Tokens issued before a restart then fail verification,
// which is fine: sessions carry no durability guarantee.
func NewSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	return b, nil
}

func (a *Authenticator) TTL() time.Duration { return a.ttl }

// Issue signs an access token for subject with the configured TTL.
func (a *Authenticator) Issue(subject string) (string, error) {
	return a.IssueWithTTL(subject, a.ttl)
}

func (a *Authenticator) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": purposeAccess,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Subject returns the username embedded in raw, or "" when the token is
// missing, malformed, expired, signed with a different secret or not an
// access token. An invalid session is indistinguishable from an anonymous
// request; this never returns an error.
func (a *Authenticator) Subject(raw string) string {
	if raw == "" {
		return ""
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if purpose, _ := claims["type"].(string); purpose != purposeAccess {
		return ""
	}

	subject, _ := claims["sub"].(string)
	return subject
}
