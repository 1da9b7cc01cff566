package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lunorlabs/lunor/internal/domain"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash, country string) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, country)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, country, created_at`

	row := r.pool.QueryRow(ctx, query, username, passwordHash, country)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, country, created_at
		FROM users
		WHERE username = $1`

	row := r.pool.QueryRow(ctx, query, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	query := `
		SELECT id, user_id, title, street, city, postal_code, country
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addrs []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Street, &a.City, &a.PostalCode, &a.Country); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addrs = append(addrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addrs, nil
}

func (r *UserRepository) AddAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error) {
	query := `
		INSERT INTO addresses (user_id, title, street, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		addr.UserID, addr.Title, addr.Street, addr.City, addr.PostalCode, addr.Country,
	).Scan(&addr.ID)
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}
	return addr, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Country, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
