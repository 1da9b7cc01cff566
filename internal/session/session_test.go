package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lunorlabs/lunor/internal/session"
)

const testSecret = "test-session-secret-at-least-32-chars!!"

func newAuthenticator() *session.Authenticator {
	return session.NewAuthenticator([]byte(testSecret), 30*time.Minute)
}

func TestIssueThenSubject_RoundTrips(t *testing.T) {
	a := newAuthenticator()

	for _, subject := range []string{"alice", "bob", "user-with-dashes"} {
		token, err := a.Issue(subject)
		if err != nil {
			t.Fatalf("Issue(%q): %v", subject, err)
		}
		if got := a.Subject(token); got != subject {
			t.Errorf("Subject = %q, want %q", got, subject)
		}
	}
}

func TestSubject_ExpiredToken_IsAnonymous(t *testing.T) {
	a := newAuthenticator()

	token, err := a.IssueWithTTL("alice", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}
	if got := a.Subject(token); got != "" {
		t.Errorf("Subject = %q, want anonymous", got)
	}
}

func TestSubject_WrongSecret_IsAnonymous(t *testing.T) {
	a := newAuthenticator()
	other := session.NewAuthenticator([]byte("a-completely-different-signing-key!!"), 30*time.Minute)

	token, err := other.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := a.Subject(token); got != "" {
		t.Errorf("Subject = %q, want anonymous", got)
	}
}

func TestSubject_WrongPurpose_IsAnonymous(t *testing.T) {
	a := newAuthenticator()

	// A refresh-style token signed with the right key must still be rejected.
	claims := jwt.MapClaims{
		"sub":  "alice",
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := a.Subject(token); got != "" {
		t.Errorf("Subject = %q, want anonymous", got)
	}
}

func TestSubject_MissingSubject_IsAnonymous(t *testing.T) {
	a := newAuthenticator()

	claims := jwt.MapClaims{
		"type": "access",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := a.Subject(token); got != "" {
		t.Errorf("Subject = %q, want anonymous", got)
	}
}

func TestSubject_Malformed_IsAnonymous(t *testing.T) {
	a := newAuthenticator()

	for _, raw := range []string{
		"",
		"garbage",
		"a.b",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.e30.", // alg=none
	} {
		if got := a.Subject(raw); got != "" {
			t.Errorf("Subject(%q) = %q, want anonymous", raw, got)
		}
	}
}

func TestNewSecret_IsRandom(t *testing.T) {
	a, err := session.NewSecret()
	if err != nil {
		t.Fatalf("NewSecret: %v", err)
	}
	b, err := session.NewSecret()
	if err != nil {
		t.Fatalf("NewSecret: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("secret length = %d, want 32", len(a))
	}
	if string(a) == string(b) {
		t.Error("two generated secrets are identical")
	}
}
