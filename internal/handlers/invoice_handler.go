package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"facturation/internal/models"
	"facturation/internal/repositories"
	"facturation/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service  *services.InvoiceService
	validate *validator.Validate
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the invoice routes with the Fiber app. The stats
// route must be registered ahead of the parameterized lookup.
func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoiceRoutes := router.Group("/invoices")
	invoiceRoutes.Get("/", h.HandleGetInvoices)
	invoiceRoutes.Get("/stats/summary", h.HandleGetStats)
	invoiceRoutes.Get("/:id", h.HandleGetInvoiceByID)
	invoiceRoutes.Post("/", h.HandleCreateInvoice)
	invoiceRoutes.Delete("/:id", h.HandleDeleteInvoice)
}

type invoiceClientRequest struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,simple_email"`
}

type invoiceItemRequest struct {
	ProductID        string   `json:"productId" validate:"required"`
	ProductName      string   `json:"productName" validate:"required"`
	ProductReference string   `json:"productReference" validate:"required"`
	Quantity         *int     `json:"quantity" validate:"required,gte=1"`
	UnitPrice        *float64 `json:"unitPrice" validate:"required,gte=0"`
	Total            *float64 `json:"total" validate:"required,gte=0"`
}

type createInvoiceRequest struct {
	ID            string                `json:"id" validate:"required"`
	InvoiceNumber string                `json:"invoiceNumber" validate:"required"`
	Date          *time.Time            `json:"date"`
	Client        *invoiceClientRequest `json:"client" validate:"required"`
	Items         []invoiceItemRequest  `json:"items" validate:"required,min=1,dive"`
	Subtotal      *float64              `json:"subtotal" validate:"required,gte=0"`
	TVA           *float64              `json:"tva" validate:"required,gte=0"`
	Total         *float64              `json:"total" validate:"required,gte=0"`
}

// HandleGetInvoices returns all invoices ordered by descending date.
func (h *InvoiceHandler) HandleGetInvoices(c *fiber.Ctx) error {
	invoices, err := h.service.GetAllInvoices()
	if err != nil {
		log.Printf("Error getting all invoices: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, invoices)
}

// HandleGetInvoiceByID returns a single invoice by its business ID.
func (h *InvoiceHandler) HandleGetInvoiceByID(c *fiber.Ctx) error {
	invoice, err := h.service.GetInvoiceByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "invoice not found")
		}
		log.Printf("Error getting invoice %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, invoice)
}

// HandleCreateInvoice creates a new invoice. The client block in the body
// becomes an immutable snapshot on the stored invoice; subtotal, tva and
// total are stored as supplied without cross-checking against the items.
func (h *InvoiceHandler) HandleCreateInvoice(c *fiber.Ctx) error {
	var req createInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.ID = strings.TrimSpace(req.ID)
	req.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	if req.Client != nil {
		req.Client.ID = strings.TrimSpace(req.Client.ID)
		req.Client.Name = strings.TrimSpace(req.Client.Name)
		req.Client.Address = strings.TrimSpace(req.Client.Address)
		req.Client.Phone = strings.TrimSpace(req.Client.Phone)
		req.Client.Email = strings.ToLower(strings.TrimSpace(req.Client.Email))
	}
	for i := range req.Items {
		req.Items[i].ProductID = strings.TrimSpace(req.Items[i].ProductID)
		req.Items[i].ProductName = strings.TrimSpace(req.Items[i].ProductName)
		req.Items[i].ProductReference = strings.TrimSpace(req.Items[i].ProductReference)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.InvoiceItem{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ProductReference: item.ProductReference,
			Quantity:         *item.Quantity,
			UnitPrice:        *item.UnitPrice,
			Total:            *item.Total,
		})
	}

	invoice := &models.Invoice{
		ID:            req.ID,
		InvoiceNumber: req.InvoiceNumber,
		Client: models.InvoiceClient{
			ID:      req.Client.ID,
			Name:    req.Client.Name,
			Address: req.Client.Address,
			Phone:   req.Client.Phone,
			Email:   req.Client.Email,
		},
		Items:    items,
		Subtotal: *req.Subtotal,
		TVA:      *req.TVA,
		Total:    *req.Total,
	}
	if req.Date != nil {
		invoice.Date = *req.Date
	}

	if err := h.service.CreateInvoice(invoice); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			msg := "an invoice with this id already exists"
			if strings.Contains(err.Error(), "number") {
				msg = "an invoice with this number already exists"
			}
			return respondError(c, fiber.StatusConflict, msg)
		}
		log.Printf("Error creating invoice: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusCreated, invoice)
}

// HandleDeleteInvoice permanently deletes an invoice by its business ID.
func (h *InvoiceHandler) HandleDeleteInvoice(c *fiber.Ctx) error {
	if err := h.service.DeleteInvoice(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "invoice not found")
		}
		log.Printf("Error deleting invoice %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondMessage(c, fiber.StatusOK, "invoice deleted successfully")
}

// HandleGetStats returns the invoice count and the total revenue.
func (h *InvoiceHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("Error getting invoice stats: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, stats)
}
