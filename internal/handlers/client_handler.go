package handlers

import (
	"errors"
	"log"
	"strings"

	"facturation/internal/models"
	"facturation/internal/repositories"
	"facturation/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	service  *services.ClientService
	validate *validator.Validate
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the client routes with the Fiber app.
func (h *ClientHandler) RegisterRoutes(router fiber.Router) {
	clientRoutes := router.Group("/clients")
	clientRoutes.Get("/", h.HandleGetClients)
	clientRoutes.Get("/:id", h.HandleGetClientByID)
	clientRoutes.Post("/", h.HandleCreateClient)
	clientRoutes.Put("/:id", h.HandleUpdateClient)
	clientRoutes.Delete("/:id", h.HandleDeleteClient)
}

type createClientRequest struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Address string  `json:"address" validate:"required"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,simple_email"`
}

type updateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Address *string `json:"address" validate:"omitempty,min=1"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,simple_email"`
}

// HandleGetClients returns all clients, newest first.
func (h *ClientHandler) HandleGetClients(c *fiber.Ctx) error {
	clients, err := h.service.GetAllClients()
	if err != nil {
		log.Printf("Error getting all clients: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, clients)
}

// HandleGetClientByID returns a single client by its business ID.
func (h *ClientHandler) HandleGetClientByID(c *fiber.Ctx) error {
	client, err := h.service.GetClientByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "client not found")
		}
		log.Printf("Error getting client %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, client)
}

// HandleCreateClient creates a new client.
func (h *ClientHandler) HandleCreateClient(c *fiber.Ctx) error {
	var req createClientRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email != nil {
		*req.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	client := &models.Client{
		ID:      req.ID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if req.Email != nil {
		client.Email = *req.Email
	}

	if err := h.service.CreateClient(client); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return respondError(c, fiber.StatusConflict, "a client with this id already exists")
		}
		log.Printf("Error creating client: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusCreated, client)
}

// HandleUpdateClient applies a partial update to an existing client. The
// update never propagates to client snapshots held by existing invoices.
func (h *ClientHandler) HandleUpdateClient(c *fiber.Ctx) error {
	var req updateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		*req.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		*req.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		*req.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}

	client, err := h.service.UpdateClient(c.Params("id"), fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "client not found")
		}
		log.Printf("Error updating client %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, client)
}

// HandleDeleteClient permanently deletes a client by its business ID.
func (h *ClientHandler) HandleDeleteClient(c *fiber.Ctx) error {
	if err := h.service.DeleteClient(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "client not found")
		}
		log.Printf("Error deleting client %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondMessage(c, fiber.StatusOK, "client deleted successfully")
}
