package repositories

import (
	"errors"

	"procure/internal/models"
)

// ErrUserNotFound is returned when a referenced user identity does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
