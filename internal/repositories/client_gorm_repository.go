package repositories

import (
	"errors"
	"fmt"

	"facturation/internal/models"

	"gorm.io/gorm"
)

// GORMClientRepository is a GORM implementation of ClientRepository.
type GORMClientRepository struct {
	db *gorm.DB
}

// NewGORMClientRepository creates a new instance of GORMClientRepository.
func NewGORMClientRepository(db *gorm.DB) *GORMClientRepository {
	return &GORMClientRepository{
		db: db,
	}
}

// GetAll retrieves all clients, newest first.
func (r *GORMClientRepository) GetAll() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get all clients: %w", err)
	}
	return clients, nil
}

// GetByID retrieves a single client by its business ID.
func (r *GORMClientRepository) GetByID(id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID %s: %w", id, err)
	}
	return &client, nil
}

// Create persists a new client. A record with the same business ID must
// not already exist.
func (r *GORMClientRepository) Create(client *models.Client) error {
	var count int64
	if err := r.db.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing client: %w", err)
	}
	if count > 0 {
		return ErrConflict
	}
	if err := r.db.Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Update applies a partial merge of the given fields and returns the
// updated record.
func (r *GORMClientRepository) Update(id string, fields map[string]interface{}) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID %s: %w", id, err)
	}
	if len(fields) > 0 {
		if err := r.db.Model(&client).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update client %s: %w", id, err)
		}
	}
	return &client, nil
}

// Delete removes a client by its business ID. Deletion is permanent and
// never touches invoices carrying a snapshot of this client.
func (r *GORMClientRepository) Delete(id string) error {
	res := r.db.Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
