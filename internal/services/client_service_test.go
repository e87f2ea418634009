package services_test

import (
	"testing"

	"facturation/internal/models"
	"facturation/internal/repositories"
	"facturation/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestClientService_CreateAndGet(t *testing.T) {
	repo := repositories.NewMockClientRepository()
	service := services.NewClientService(repo)

	client := &models.Client{ID: "c1", Name: "Acme", Address: "1 rue de la Paix", Email: "contact@acme.fr"}
	assert.NoError(t, service.CreateClient(client))

	// Duplicate business ID never overwrites
	err := service.CreateClient(&models.Client{ID: "c1", Name: "Other", Address: "elsewhere"})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	stored, err := service.GetClientByID("c1")
	assert.NoError(t, err)
	assert.Equal(t, "Acme", stored.Name)

	_, err = service.GetClientByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestClientService_UpdateClient(t *testing.T) {
	repo := repositories.NewMockClientRepository()
	service := services.NewClientService(repo)

	client := &models.Client{ID: "c1", Name: "Acme", Address: "1 rue de la Paix", Phone: "0102030405"}
	assert.NoError(t, service.CreateClient(client))

	// Only the fields present in the request are touched
	updated, err := service.UpdateClient("c1", map[string]interface{}{"name": "Acme SARL"})
	assert.NoError(t, err)
	assert.Equal(t, "Acme SARL", updated.Name)
	assert.Equal(t, "1 rue de la Paix", updated.Address)
	assert.Equal(t, "0102030405", updated.Phone)

	_, err = service.UpdateClient("missing", map[string]interface{}{"name": "X"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestClientService_DeleteClient(t *testing.T) {
	repo := repositories.NewMockClientRepository()
	service := services.NewClientService(repo)

	assert.NoError(t, service.CreateClient(&models.Client{ID: "c1", Name: "Acme", Address: "1 rue de la Paix"}))
	assert.NoError(t, service.DeleteClient("c1"))
	assert.ErrorIs(t, service.DeleteClient("c1"), repositories.ErrNotFound)
}

func TestClientService_GetAllNewestFirst(t *testing.T) {
	repo := repositories.NewMockClientRepository()
	service := services.NewClientService(repo)

	assert.NoError(t, service.CreateClient(&models.Client{ID: "c1", Name: "First", Address: "a"}))
	assert.NoError(t, service.CreateClient(&models.Client{ID: "c2", Name: "Second", Address: "b"}))

	clients, err := service.GetAllClients()
	assert.NoError(t, err)
	assert.Len(t, clients, 2)
	assert.Equal(t, "c2", clients[0].ID)
	assert.Equal(t, "c1", clients[1].ID)
}
