package repositories

import (
	"facturation/internal/models"
)

// ClientRepository defines the interface for client data access.
type ClientRepository interface {
	GetAll() ([]models.Client, error)
	GetByID(id string) (*models.Client, error)
	Create(client *models.Client) error
	Update(id string, fields map[string]interface{}) (*models.Client, error)
	Delete(id string) error
}
