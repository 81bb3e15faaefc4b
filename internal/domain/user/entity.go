package user

import (
	"time"
)

// User is the account aggregate root. Password holds the bcrypt hash; the
// plain text never leaves the service layer. Books, reviews and favorites
// reference users by ID only.
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // bcrypt hash
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates an account with an already-hashed password.
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
