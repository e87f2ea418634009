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

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

type createProductRequest struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Reference string   `json:"reference" validate:"required"`
	UnitPrice *float64 `json:"unitPrice" validate:"required,gte=0"`
	Stock     *int     `json:"stock" validate:"omitempty,gte=0"`
}

type updateProductRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1"`
	Reference *string  `json:"reference" validate:"omitempty,min=1"`
	UnitPrice *float64 `json:"unitPrice" validate:"omitempty,gte=0"`
	Stock     *int     `json:"stock" validate:"omitempty,gte=0"`
}

// HandleGetProducts returns all products, newest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, products)
}

// HandleGetProductByID returns a single product by its business ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "product not found")
		}
		log.Printf("Error getting product %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Reference = strings.TrimSpace(req.Reference)
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	product := &models.Product{
		ID:        req.ID,
		Name:      req.Name,
		Reference: req.Reference,
		UnitPrice: *req.UnitPrice,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.service.CreateProduct(product); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return respondError(c, fiber.StatusConflict, "a product with this id already exists")
		}
		log.Printf("Error creating product: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusCreated, product)
}

// HandleUpdateProduct applies a partial update to an existing product.
// Only the fields present in the body are touched; each present field must
// satisfy the same rule as on creation.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
	}
	if req.Reference != nil {
		*req.Reference = strings.TrimSpace(*req.Reference)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Reference != nil {
		fields["reference"] = *req.Reference
	}
	if req.UnitPrice != nil {
		fields["unit_price"] = *req.UnitPrice
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}

	product, err := h.service.UpdateProduct(c.Params("id"), fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "product not found")
		}
		log.Printf("Error updating product %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleDeleteProduct permanently deletes a product by its business ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "product not found")
		}
		log.Printf("Error deleting product %s: %v", c.Params("id"), err)
		return respondError(c, fiber.StatusInternalServerError, "server error")
	}
	return respondMessage(c, fiber.StatusOK, "product deleted successfully")
}
