package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/homestay-platform/backend/pkg/errors"
)

const (
	maxNameLength     = 50
	minPasswordLength = 8
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)

// User represents a registered account. The password is stored only as a
// bcrypt hash and is never serialized.
type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser builds a validated user with a generated ID and fresh timestamps.
// The caller supplies an already-hashed password.
func NewUser(firstName, lastName, email, passwordHash string, isAdmin bool) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the full record against the user invariants.
func (u *User) Validate() error {
	if u.FirstName == "" || len(u.FirstName) > maxNameLength {
		return apperrors.NewValidationError("first name must be between 1 and 50 characters")
	}
	if u.LastName == "" || len(u.LastName) > maxNameLength {
		return apperrors.NewValidationError("last name must be between 1 and 50 characters")
	}
	if !emailPattern.MatchString(u.Email) {
		return apperrors.NewValidationError("email must be a valid email address")
	}
	if u.PasswordHash == "" {
		return apperrors.NewValidationError("password is required")
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}
	return nil
}

// UserPatch is a sparse update: only non-nil fields are merged. Password
// carries a plaintext replacement; Apply never touches it, the service layer
// validates and hashes it before the write so the plaintext is hashed exactly
// once and never reaches storage.
type UserPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
}

// Apply merges the patch into a copy of existing, re-validates the full
// record, and refreshes UpdatedAt. The existing record is not modified.
func (p UserPatch) Apply(existing *User) (*User, error) {
	updated := *existing
	if p.FirstName != nil {
		updated.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		updated.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		updated.Email = strings.TrimSpace(*p.Email)
	}
	if p.IsAdmin != nil {
		updated.IsAdmin = *p.IsAdmin
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// ChangesEmail reports whether the patch would move the record to a new
// email address, which requires a uniqueness re-check.
func (p UserPatch) ChangesEmail(existing *User) bool {
	return p.Email != nil && strings.TrimSpace(*p.Email) != existing.Email
}
