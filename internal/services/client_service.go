package services

import (
	"facturation/internal/models"
	"facturation/internal/repositories"
)

// ClientService handles business logic related to clients.
type ClientService struct {
	repo repositories.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(repo repositories.ClientRepository) *ClientService {
	return &ClientService{
		repo: repo,
	}
}

// GetAllClients retrieves all clients, newest first.
func (s *ClientService) GetAllClients() ([]models.Client, error) {
	return s.repo.GetAll()
}

// GetClientByID retrieves a single client by its business ID.
func (s *ClientService) GetClientByID(id string) (*models.Client, error) {
	return s.repo.GetByID(id)
}

// CreateClient creates a new client. The repository reports ErrConflict
// when the business ID is already taken.
func (s *ClientService) CreateClient(client *models.Client) error {
	return s.repo.Create(client)
}

// UpdateClient applies a partial update to an existing client. Invoices
// created before the update keep their original client snapshot.
func (s *ClientService) UpdateClient(id string, fields map[string]interface{}) (*models.Client, error) {
	return s.repo.Update(id, fields)
}

// DeleteClient deletes a client by its business ID.
func (s *ClientService) DeleteClient(id string) error {
	return s.repo.Delete(id)
}
