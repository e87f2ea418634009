package services

import (
	"facturation/internal/models"
	"facturation/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its business ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. The repository reports ErrConflict
// when the business ID is already taken.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct applies a partial update to an existing product.
func (s *ProductService) UpdateProduct(id string, fields map[string]interface{}) (*models.Product, error) {
	return s.repo.Update(id, fields)
}

// DeleteProduct deletes a product by its business ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
