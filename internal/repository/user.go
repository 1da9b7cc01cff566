package repository

import (
	"context"

	"github.com/lunorlabs/lunor/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, username, passwordHash, country string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	AddAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error)
}
