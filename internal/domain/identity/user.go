package identity

import (
	"regexp"
	"strings"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at login and on creation
const MinPasswordLength = 6

var bcryptCost = bcrypt.DefaultCost

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is a dashboard operator that signs in with email and password
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
}

// NewUser creates a user with a bcrypt hashed password
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return nil, shared.InvalidInput("Name is required.")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = string(hash)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the email format
func ValidateEmail(email string) error {
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.InvalidInput("Invalid email address.")
	}
	return nil
}

// ValidatePassword checks the password length
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.InvalidInput("Password must be at least 6 characters.")
	}
	if len(password) > 72 {
		return shared.InvalidInput("Password cannot exceed 72 characters.")
	}
	return nil
}
