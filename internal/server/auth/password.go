package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// PasswordHasher hashes passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
	// dummy is compared against when no stored hash exists, so that a
	// missing account costs as much as a wrong password.
	dummy []byte
}

// NewPasswordHasher returns a hasher for cost. A non-positive cost means
// bcrypt.DefaultCost. Costs outside bcrypt's range are rejected; the server
// config additionally refuses anything below DefaultCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d is outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("task-keeper-dummy-password"), cost)
	if err != nil {
		return nil, err
	}

	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

// HashPassword returns the bcrypt hash of password. Empty passwords and
// passwords over 72 bytes are rejected with a validation error.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", common.NewValidationError("password", "must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", common.NewValidationError("password", "must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewValidationError("password", "must be at most 72 bytes")
		}
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. An empty hash is
// checked against a dummy value and always fails.
func (h *PasswordHasher) VerifyPassword(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
