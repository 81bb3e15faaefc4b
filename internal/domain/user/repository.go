package user

import (
	"context"
)

// Repository is implemented by the MySQL persistence layer.
type Repository interface {
	// Create inserts a user; duplicate email yields ErrEmailDuplicate.
	Create(ctx context.Context, user *User) error

	// FindByID returns a user by primary key.
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail returns a user by unique email.
	FindByEmail(ctx context.Context, email string) (*User, error)
}
