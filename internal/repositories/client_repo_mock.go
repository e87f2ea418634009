package repositories

import (
	"sync"
	"time"

	"facturation/internal/models"
)

// MockClientRepository is an in-memory implementation of ClientRepository.
type MockClientRepository struct {
	clients map[string]models.Client
	order   []string
	mu      sync.RWMutex
}

// NewMockClientRepository creates a new instance of MockClientRepository.
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		clients: make(map[string]models.Client),
	}
}

// GetAll returns all clients, newest first.
func (r *MockClientRepository) GetAll() ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clientList := make([]models.Client, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		clientList = append(clientList, r.clients[r.order[i]])
	}
	return clientList, nil
}

// GetByID returns a client by its business ID.
func (r *MockClientRepository) GetByID(id string) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &client, nil
}

// Create adds a new client.
func (r *MockClientRepository) Create(client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID]; ok {
		return ErrConflict
	}
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now
	r.clients[client.ID] = *client
	r.order = append(r.order, client.ID)
	return nil
}

// Update applies a partial merge of the given fields.
func (r *MockClientRepository) Update(id string, fields map[string]interface{}) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "name":
			if v, ok := value.(string); ok {
				client.Name = v
			}
		case "address":
			if v, ok := value.(string); ok {
				client.Address = v
			}
		case "phone":
			if v, ok := value.(string); ok {
				client.Phone = v
			}
		case "email":
			if v, ok := value.(string); ok {
				client.Email = v
			}
		}
	}
	client.UpdatedAt = time.Now()
	r.clients[id] = client
	return &client, nil
}

// Delete removes a client by its business ID.
func (r *MockClientRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return ErrNotFound
	}
	delete(r.clients, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
