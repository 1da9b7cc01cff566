package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/password"
	"github.com/lunorlabs/lunor/internal/repository"
	"github.com/lunorlabs/lunor/internal/session"
)

type AuthUsecase struct {
	users    repository.UserRepository
	sessions *session.Authenticator
}

func NewAuthUsecase(users repository.UserRepository, sessions *session.Authenticator) *AuthUsecase {
	return &AuthUsecase{users: users, sessions: sessions}
}

type RegisterInput struct {
	Username string
	Password string
	Country  string
}

// Register creates the user and returns a signed session token so the new
// account is logged in immediately.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (string, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, input.Username, hash, input.Country)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.sessions.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// Login verifies the credentials and issues a session token. An unknown
// username and a wrong password both map to ErrInvalidCredentials so the
// response never reveals which one it was.
func (u *AuthUsecase) Login(ctx context.Context, username, plain string) (string, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !password.Verify(plain, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.sessions.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// Account returns the profile and addresses for the account view.
func (u *AuthUsecase) Account(ctx context.Context, username string) (*domain.User, []domain.Address, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	addrs, err := u.users.ListAddresses(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list addresses: %w", err)
	}
	return user, addrs, nil
}

type AddAddressInput struct {
	Title      string
	Street     string
	City       string
	PostalCode *string
	Country    string
}

func (u *AuthUsecase) AddAddress(ctx context.Context, username string, input AddAddressInput) (*domain.Address, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	addr := &domain.Address{
		UserID:     user.ID,
		Title:      input.Title,
		Street:     input.Street,
		City:       input.City,
		PostalCode: input.PostalCode,
		Country:    input.Country,
	}
	created, err := u.users.AddAddress(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}
	return created, nil
}
