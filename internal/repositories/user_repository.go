package repositories

import (
	"time"

	"facturation/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	UpdateLastLogin(id string, at time.Time) error
	Count() (int64, error)
}
