package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        string    `db:"id"` // UUID
	Email     string    `db:"email"`
	Password  string    `db:"password"` // bcrypt hashed
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewUser(email, hashedPassword, firstName, lastName string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New().String(),
		Email:     NormalizeEmail(email),
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail is applied before every lookup and insert so addresses
// differing only by case or surrounding space map to one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
