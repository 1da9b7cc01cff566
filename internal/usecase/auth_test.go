package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/password"
	"github.com/lunorlabs/lunor/internal/session"
	"github.com/lunorlabs/lunor/internal/usecase"
)

// ---- fakes ----

type fakeUserRepo struct {
	create         func(ctx context.Context, username, passwordHash, country string) (*domain.User, error)
	findByUsername func(ctx context.Context, username string) (*domain.User, error)
	listAddresses  func(ctx context.Context, userID string) ([]domain.Address, error)
	addAddress     func(ctx context.Context, addr *domain.Address) (*domain.Address, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, username, passwordHash, country string) (*domain.User, error) {
	return r.create(ctx, username, passwordHash, country)
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findByUsername(ctx, username)
}

func (r *fakeUserRepo) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return r.listAddresses(ctx, userID)
}

func (r *fakeUserRepo) AddAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error) {
	return r.addAddress(ctx, addr)
}

// memUserRepo is a map-backed repo for flows that need real uniqueness.
type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, username, passwordHash, country string) (*domain.User, error) {
	if _, ok := r.users[username]; ok {
		return nil, domain.ErrUserExists
	}
	u := &domain.User{ID: "id-" + username, Username: username, PasswordHash: passwordHash, Country: country}
	r.users[username] = u
	return u, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) ListAddresses(_ context.Context, _ string) ([]domain.Address, error) {
	return nil, nil
}

func (r *memUserRepo) AddAddress(_ context.Context, addr *domain.Address) (*domain.Address, error) {
	return addr, nil
}

// ---- helpers ----

const testSessionSecret = "test-session-secret-at-least-32-chars!!"

func newSessions() *session.Authenticator {
	return session.NewAuthenticator([]byte(testSessionSecret), 30*time.Minute)
}

// ---- Register ----

func TestRegister_HashesPasswordAndIssuesSession(t *testing.T) {
	var storedHash string
	repo := &fakeUserRepo{
		create: func(_ context.Context, username, passwordHash, _ string) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: "u1", Username: username}, nil
		},
	}

	sessions := newSessions()
	token, err := usecase.NewAuthUsecase(repo, sessions).Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "secret1", Country: "US",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if storedHash == "secret1" {
		t.Error("password stored in clear")
	}
	if !password.Verify("secret1", storedHash) {
		t.Error("stored hash does not verify the password")
	}
	if got := sessions.Subject(token); got != "alice" {
		t.Errorf("session subject = %q, want alice", got)
	}
}

func TestRegister_DuplicateUsername_LeavesFirstAccountIntact(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewAuthUsecase(repo, newSessions())

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "secret1", Country: "US",
	}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "different", Country: "FR",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("second Register err = %v, want ErrUserExists", err)
	}

	// The original credentials must still work.
	token, err := uc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login after duplicate attempt: %v", err)
	}
	if token == "" {
		t.Error("Login returned empty token")
	}
}

// ---- Login ----

func TestLogin_UnknownUserAndWrongPassword_SameError(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewAuthUsecase(repo, newSessions())

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "secret1", Country: "US",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := uc.Login(context.Background(), "nobody", "secret1")
	_, wrongPwErr := uc.Login(context.Background(), "alice", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPwErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongPwErr)
	}
}

func TestLogin_Success_IssuesSessionForUser(t *testing.T) {
	repo := newMemUserRepo()
	sessions := newSessions()
	uc := usecase.NewAuthUsecase(repo, sessions)

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "secret1", Country: "US",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := uc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := sessions.Subject(token); got != "alice" {
		t.Errorf("session subject = %q, want alice", got)
	}
}
