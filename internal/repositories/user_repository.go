package repositories

import "katalog/internal/models"

// UserRepository defines the interface for admin account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
