package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Country      string
	CreatedAt    time.Time
}

type Address struct {
	ID         string
	UserID     string
	Title      string
	Street     string
	City       string
	PostalCode *string // nil when not provided
	Country    string
}
