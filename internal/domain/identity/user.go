package identity

import (
	"strings"

	"github.com/solemart/backend/internal/domain/shared"
)

// User is the identity aggregate root
type User struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"not null;size:64;uniqueIndex"`
	Email        string `gorm:"not null;size:255;uniqueIndex"`
	PasswordHash string `gorm:"not null;size:255" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a pre-hashed password
func NewUser(username, email, passwordHash string) (*User, error) {
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.TrimSpace(username),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) validate() error {
	if u.Username == "" {
		return shared.NewDomainError("INVALID_INPUT", "Username cannot be empty")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return shared.NewDomainError("INVALID_INPUT", "Email address is not valid")
	}
	if u.PasswordHash == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}
	return nil
}
